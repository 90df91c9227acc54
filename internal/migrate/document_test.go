package migrate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_RejectsNonObjects(t *testing.T) {
	for _, in := range []string{"", "   ", "null", "[]", "42", `"state"`, "{not json", "{\"ui\": }"} {
		_, err := Decode([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
	_, err := Decode([]byte("null"))
	assert.True(t, errors.Is(err, ErrNotObject))
}

func TestDecode_EmptyObject(t *testing.T) {
	doc, err := Decode([]byte("{}"))
	require.NoError(t, err)
	assert.Nil(t, doc.Profile)
	assert.Nil(t, doc.Workbook)
	assert.Nil(t, doc.UI)
}

func TestScore_Lenient(t *testing.T) {
	tests := []struct {
		in    string
		want  Score
	}{
		{`70`, Score{Value: 70, Valid: true}},
		{`72.6`, Score{Value: 73, Valid: true}},
		{`"64"`, Score{Value: 64, Valid: true}},
		{`" 8 "`, Score{Value: 8, Valid: true}},
		{`-3`, Score{Value: -3, Valid: true}},
		{`1e300`, Score{Value: 1_000_000_000, Valid: true}},
		{`"high"`, Score{}},
		{`true`, Score{}},
		{`{}`, Score{}},
	}
	for _, tt := range tests {
		var s Score
		require.NoError(t, s.UnmarshalJSON([]byte(tt.in)), tt.in)
		assert.Equal(t, tt.want, s, tt.in)
	}
}

func TestText_Lenient(t *testing.T) {
	tests := []struct{ in, want string }{
		{`"hello"`, "hello"},
		{`12`, "12"},
		{`1.5`, "1.5"},
		{`false`, "false"},
		{`[1,2]`, ""},
		{`{"a":1}`, ""},
	}
	for _, tt := range tests {
		var txt Text
		require.NoError(t, txt.UnmarshalJSON([]byte(tt.in)), tt.in)
		assert.Equal(t, tt.want, string(txt), tt.in)
	}
}

func TestDecode_NullFieldsAreAbsent(t *testing.T) {
	doc, err := Decode([]byte(`{"ui": null, "workbook": {"title": null, "months": null}}`))
	require.NoError(t, err)
	assert.Nil(t, doc.UI)
	require.NotNil(t, doc.Workbook)
	assert.Nil(t, doc.Workbook.Title)
	assert.Nil(t, doc.Workbook.Months)
}

func TestDecode_WrongTypedObjectsAreAbsent(t *testing.T) {
	doc, err := Decode([]byte(`{"profile":"Ada","ui":3,"workbook":{"months":{"May":{"decision":[],"identityWheel":"x","dailyLogs":[],"weeklyLogs":true}},"yearEnd":"legacy"}}`))
	require.NoError(t, err)

	assert.True(t, doc.Profile.missing())
	assert.True(t, doc.UI.missing())
	require.False(t, doc.Workbook.missing())
	assert.True(t, doc.Workbook.YearEnd.missing())

	may := doc.Workbook.Months["May"]
	require.False(t, may.missing())
	assert.True(t, may.Decision.missing())
	assert.Nil(t, may.IdentityWheel)
	assert.Nil(t, may.DailyLogs)
	assert.Nil(t, may.WeeklyLogs)

	_, err = Decode([]byte(`{"workbook":"legacy"}`))
	require.NoError(t, err)
}
