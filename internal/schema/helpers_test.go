package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// withMonths decodes a state document, lets fn edit workbook.months and
// re-encodes it.
func withMonths(t *testing.T, data []byte, fn func(months map[string]any)) []byte {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	wb := doc["workbook"].(map[string]any)
	fn(wb["months"].(map[string]any))
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	return out
}

func replaceOnce(s, old, new string) string {
	return strings.Replace(s, old, new, 1)
}
