package persist

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/meworkbook/internal/derive"
	"github.com/roach88/meworkbook/internal/model"
	"github.com/roach88/meworkbook/internal/store"
)

func sampleState() *model.RootState {
	s := model.NewRootState()
	s.Profile = &model.Profile{Name: "Ada", Birthdate: "1990-03-15", Birthplace: "Lagos"}
	s.Workbook.ProfileInsights = derive.Insights(s.Profile.Birthdate, s.Workbook.Year)
	s.UI = model.UIState{CurrentView: model.ViewMonth, CurrentMonth: model.June}
	jun := s.Workbook.Month(model.June)
	jun.Reflection = "long days"
	jun.AlignmentScore = 82
	jun.IdentityWheel[model.Courage] = 9
	jun.DailyLogs["2026-06-02"] = "ran"
	jun.WeeklyLogs[model.Week2] = "steady"
	s.Workbook.YearEnd.Shifted = "a lot"
	return s
}

// failingBackend fails every call with err.
type failingBackend struct{ err error }

func (f failingBackend) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingBackend) Put(context.Context, string, []byte) error         { return f.err }
func (f failingBackend) Delete(context.Context, string) error              { return f.err }
func (f failingBackend) Stat(context.Context, string) (store.RecordInfo, bool, error) {
	return store.RecordInfo{}, false, f.err
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	g := New(store.NewMemory())
	want := sampleState()

	require.NoError(t, g.Save(ctx, want))
	got, ok, err := g.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load(Save(s)) mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoad_RoundTripSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open(filepath.Join(t.TempDir(), "workbook.db"))
	require.NoError(t, err)
	defer db.Close()

	g := New(db)
	want := sampleState()
	require.NoError(t, g.Save(ctx, want))

	got, ok, err := g.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load(Save(s)) mismatch (-want +got):\n%s", diff)
	}

	info, ok, err := g.Info(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, DefaultKey, info.Key)
	assert.NotEmpty(t, info.Revision)
}

func TestEnsure_FreshStore(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	g := New(mem)

	s, err := g.Ensure(ctx)
	require.NoError(t, err)

	assert.Nil(t, s.Profile)
	require.Len(t, s.Workbook.Months, 12)
	for _, m := range model.Months() {
		rec := s.Workbook.Months[m]
		assert.Equal(t, 50, rec.AlignmentScore, m.String())
		for _, dim := range model.WheelDimensions() {
			assert.Equal(t, 5, rec.IdentityWheel[dim], "%s %s", m, dim)
		}
	}
	assert.Equal(t, 1, mem.Writes(), "fresh state is saved")

	again, err := g.Ensure(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, again)
	assert.Equal(t, 1, mem.Writes(), "current record is not rewritten")
}

func TestEnsure_RepairsLegacyRecord(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	mem.Set(DefaultKey, []byte(`{"profile":{"name":"Ada","birthdate":"1990-03-15","birthplace":""},"workbook":{"months":{"March":{"reflection":"kept"}}}}`))
	g := New(mem)

	s, err := g.Ensure(ctx)
	require.NoError(t, err)
	assert.Equal(t, "kept", s.Workbook.Month(model.March).Reflection)
	assert.Equal(t, model.DefaultTheme(model.March), s.Workbook.Month(model.March).Theme)
	require.NotNil(t, s.Workbook.ProfileInsights.LifePath)
	assert.Equal(t, 1, *s.Workbook.ProfileInsights.LifePath)
	assert.Equal(t, 1, mem.Writes(), "repaired record is written back")

	_, err = g.Ensure(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, mem.Writes())
}

func TestEnsure_PersistsNormalizedRecord(t *testing.T) {
	ctx := context.Background()
	canonical, err := model.Marshal(model.NewRootState())
	require.NoError(t, err)

	raw := bytes.Replace(canonical, []byte(`"alignmentScore":50`), []byte(`"alignmentScore":150`), 1)
	raw = bytes.Replace(raw, []byte(`"currentView":"home"`), []byte(`"currentView":"bogus"`), 1)
	require.NotEqual(t, canonical, raw)

	mem := store.NewMemory()
	mem.Set(DefaultKey, raw)
	g := New(mem)

	s, err := g.Ensure(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, s.Workbook.Month(model.January).AlignmentScore)
	assert.Equal(t, model.ViewHome, s.UI.CurrentView)
	assert.Equal(t, 1, mem.Writes(), "normalized record is written back")

	stored, ok, err := mem.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(stored), `"alignmentScore":100`)
	assert.NotContains(t, string(stored), `"alignmentScore":150`)
	assert.NotContains(t, string(stored), "bogus")

	_, err = g.Ensure(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, mem.Writes(), "canonical record is not rewritten")
}

func TestEnsure_WrongTypedSectionKeepsUserData(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	mem := store.NewMemory()
	mem.Set(DefaultKey, []byte(`{"profile":{"name":"Ada","birthdate":"1990-03-15","birthplace":""},`+
		`"workbook":{"months":{"March":{"reflection":"precious user text","decision":"legacy","dailyLogs":[]}},"yearEnd":"legacy"}}`))
	g := New(mem, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	s, err := g.Ensure(ctx)
	require.NoError(t, err)
	require.NotNil(t, s.Profile)
	assert.Equal(t, "Ada", s.Profile.Name)
	mar := s.Workbook.Month(model.March)
	assert.Equal(t, "precious user text", mar.Reflection)
	assert.Equal(t, model.Decision{}, mar.Decision)
	assert.Empty(t, mar.DailyLogs)
	assert.Equal(t, model.YearEnd{}, s.Workbook.YearEnd)
	assert.NotContains(t, logs.String(), "discarding unreadable workbook record")

	stored, _, err := mem.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Contains(t, string(stored), "precious user text")
}

func TestLoad_CorruptRecordIsNoState(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"{not json", "null", "[]", `"x"`} {
		var logs bytes.Buffer
		mem := store.NewMemory()
		mem.Set(DefaultKey, []byte(raw))
		g := New(mem, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

		s, ok, err := g.Load(ctx)
		require.NoError(t, err, raw)
		assert.False(t, ok, raw)
		assert.Nil(t, s, raw)
		assert.Contains(t, logs.String(), "discarding unreadable workbook record", raw)

		fresh, err := g.Ensure(ctx)
		require.NoError(t, err, raw)
		assert.Nil(t, fresh.Profile, raw)
	}
}

func TestLoad_MissingRecord(t *testing.T) {
	s, ok, err := New(store.NewMemory()).Load(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, s)
}

func TestLoad_UnknownKeysAreLogged(t *testing.T) {
	var logs bytes.Buffer
	mem := store.NewMemory()
	mem.Set(DefaultKey, []byte(`{"workbook":{"months":{"Undecember":{"theme":"?"}}}}`))
	g := New(mem, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	_, ok, err := g.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, logs.String(), "Undecember")
}

func TestBackendErrorsAreReturned(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk gone")
	g := New(failingBackend{err: boom})

	_, _, err := g.Load(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = g.Ensure(ctx)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, g.Save(ctx, model.NewRootState()), boom)
	_, err = g.Reset(ctx)
	assert.ErrorIs(t, err, boom)
	_, _, err = g.Info(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	g := New(mem)
	require.NoError(t, g.Save(ctx, sampleState()))

	s, err := g.Reset(ctx)
	require.NoError(t, err)
	assert.Nil(t, s.Profile)
	assert.Equal(t, model.DefaultTitle, s.Workbook.Title)

	loaded, ok, err := g.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, s, loaded)
}

func TestWithKey(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	g := New(mem, WithKey("other"), WithKey(""))
	assert.Equal(t, "other", g.Key())

	require.NoError(t, g.Save(ctx, model.NewRootState()))
	_, ok, _ := mem.Get(ctx, "other")
	assert.True(t, ok)
	_, ok, _ = mem.Get(ctx, DefaultKey)
	assert.False(t, ok)
}

func TestExport(t *testing.T) {
	at := time.Date(2026, 12, 31, 23, 59, 58, 123_000_000, time.UTC)

	exp := New(store.NewMemory()).Export(sampleState(), at)
	assert.Equal(t, "2026-12-31T23:59:58.123Z", exp.ExportedAt)
	assert.Equal(t, model.ExportApp, exp.App)
	assert.Equal(t, model.ExportVersion, exp.Version)
	require.NotNil(t, exp.Profile)
	assert.Equal(t, "Ada", exp.Profile.Name)

	custom := New(store.NewMemory(), WithExportLabels("", "v9")).Export(sampleState(), at)
	assert.Equal(t, model.ExportApp, custom.App)
	assert.Equal(t, "v9", custom.Version)
}
