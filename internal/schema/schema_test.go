package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/meworkbook/internal/derive"
	"github.com/roach88/meworkbook/internal/migrate"
	"github.com/roach88/meworkbook/internal/model"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	require.NoError(t, err)
	return v
}

func populated() *model.RootState {
	s := model.NewRootState()
	s.Profile = &model.Profile{Name: "Ada", Birthdate: "1990-03-15", Birthplace: "Lagos"}
	s.Workbook.ProfileInsights = derive.Insights(s.Profile.Birthdate, s.Workbook.Year)
	s.UI = model.UIState{CurrentView: model.ViewMonth, CurrentMonth: model.September}
	sep := s.Workbook.Month(model.September)
	sep.DailyLogs["2026-09-09"] = "nine"
	sep.AlignmentScore = 100
	sep.IdentityWheel[model.Courage] = 0
	return s
}

func requireIssues(t *testing.T, err error) *ValidationError {
	t.Helper()
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "want *ValidationError, got %v", err)
	require.NotEmpty(t, ve.Issues)
	return ve
}

func TestValidateState_AcceptsFreshAndPopulated(t *testing.T) {
	v := newValidator(t)
	assert.NoError(t, v.ValidateState(model.NewRootState()))
	assert.NoError(t, v.ValidateState(populated()))
}

func TestValidateState_AcceptsMigratedRecords(t *testing.T) {
	v := newValidator(t)

	legacy, err := os.ReadFile(filepath.Join("..", "migrate", "testdata", "legacy_v1_1.json"))
	require.NoError(t, err)

	inputs := map[string][]byte{
		"legacy":  legacy,
		"empty":   []byte(`{}`),
		"partial": []byte(`{"workbook":{"months":{"May":{"alignmentScore":"180","identityWheel":{"courage":-4}}}}}`),
		"junk":    []byte(`{"ui":{"currentView":"settings"},"profile":{"name":7,"birthdate":"soon"}}`),
	}
	for name, in := range inputs {
		s, _, err := migrate.MigrateBytes(in)
		require.NoError(t, err, name)
		assert.NoError(t, v.ValidateState(s), name)
	}
}

func TestValidateExport(t *testing.T) {
	v := newValidator(t)
	at := time.Date(2026, 12, 31, 20, 0, 0, 0, time.UTC)

	assert.NoError(t, v.ValidateExport(model.NewExport(populated(), at, model.ExportApp, model.ExportVersion)))
	assert.NoError(t, v.ValidateExport(model.NewExport(model.NewRootState(), at, model.ExportApp, model.ExportVersion)))

	err := v.ValidateExport(model.NewExport(populated(), at, "", model.ExportVersion))
	requireIssues(t, err)
}

func TestValidate_RejectsUnknownMonth(t *testing.T) {
	v := newValidator(t)
	data, err := model.Marshal(populated())
	require.NoError(t, err)

	doc := withMonths(t, data, func(months map[string]any) {
		months["Undecember"] = months["December"]
	})
	ve := requireIssues(t, v.Validate(KindState, doc))
	assert.Equal(t, KindState, ve.Kind)
	assert.Contains(t, ve.Error(), "Undecember")
}

func TestValidate_RejectsOutOfRangeScores(t *testing.T) {
	v := newValidator(t)

	alignment := populated()
	alignment.Workbook.Month(model.March).AlignmentScore = 150
	ve := requireIssues(t, v.ValidateState(alignment))
	assert.Contains(t, ve.Issues[0].Path, "alignmentScore")

	wheel := populated()
	wheel.Workbook.Month(model.March).IdentityWheel[model.Discipline] = 11
	requireIssues(t, v.ValidateState(wheel))
}

func TestValidate_RejectsUnknownView(t *testing.T) {
	v := newValidator(t)

	data, err := model.Marshal(model.NewRootState())
	require.NoError(t, err)
	doc := []byte(replaceOnce(string(data), `"currentView":"home"`, `"currentView":"settings"`))
	requireIssues(t, v.Validate(KindState, doc))
}

func TestValidate_RejectsLegacyRecordBeforeMigration(t *testing.T) {
	v := newValidator(t)
	legacy, err := os.ReadFile(filepath.Join("..", "migrate", "testdata", "legacy_v1_1.json"))
	require.NoError(t, err)

	requireIssues(t, v.Validate(KindState, legacy))
}

func TestValidate_MalformedJSON(t *testing.T) {
	v := newValidator(t)
	err := v.Validate(KindState, []byte(`{"workbook": `))
	require.Error(t, err)

	var ve *ValidationError
	assert.False(t, errors.As(err, &ve), "parse failures are not schema issues")
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("export")
	require.NoError(t, err)
	assert.Equal(t, KindExport, k)

	k, err = ParseKind(" state ")
	require.NoError(t, err)
	assert.Equal(t, KindState, k)

	_, err = ParseKind("ledger")
	assert.Error(t, err)
}
