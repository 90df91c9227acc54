package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAlignmentLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Fully Aligned"},
		{85, "Fully Aligned"},
		{84, "Mostly Aligned"},
		{70, "Mostly Aligned"},
		{50, "Mixed / In Progress"},
		{49, "Off Track / Draining"},
		{30, "Off Track / Draining"},
		{29, "Silencing Myself"},
		{0, "Silencing Myself"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AlignmentLabel(tt.score), "score %d", tt.score)
	}
}

func TestProgressSummary(t *testing.T) {
	rec := BuildEmptyMonth(March, WorkbookYear)
	assert.Equal(t, "0/4 sections filled", rec.ProgressSummary())

	rec.Reflection = "wrote something"
	rec.Expression = "   "
	rec.Decision.Prompt = "move?"
	assert.Equal(t, 2, rec.Progress())
	assert.Equal(t, "2/4 sections filled", rec.ProgressSummary())
}

func TestWheelAverage(t *testing.T) {
	w := DefaultWheel()
	assert.InDelta(t, 5.0, w.Average(), 1e-9)

	w[Courage] = 8
	w[Discipline] = 2
	assert.InDelta(t, 5.0, w.Average(), 1e-9)

	w[Creativity] = 8
	assert.InDelta(t, 5.5, w.Average(), 1e-9)
}

func TestNewExport(t *testing.T) {
	s := NewRootState()
	s.Profile = &Profile{Name: "Ada", Birthdate: "1990-03-15"}
	at := time.Date(2026, 2, 3, 4, 5, 6, 789_000_000, time.FixedZone("X", 3600))

	exp := NewExport(s, at, ExportApp, ExportVersion)
	assert.Equal(t, "2026-02-03T03:05:06.789Z", exp.ExportedAt)
	assert.Equal(t, "ME App", exp.App)
	assert.Equal(t, "single_2026_v1.1", exp.Version)
	assert.Equal(t, "Ada", exp.Profile.Name)

	// The export is a snapshot.
	s.Profile.Name = "Changed"
	assert.Equal(t, "Ada", exp.Profile.Name)
}
