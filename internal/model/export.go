package model

import "time"

const (
	// ExportApp is the fixed application label written into exports.
	ExportApp = "ME App"

	// ExportVersion is the default free-form export version string.
	ExportVersion = "single_2026_v1.1"

	// ExportFilename is the suggested file name for a saved export.
	ExportFilename = "meapp_export_2026.json"

	exportTimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Export is the self-contained record handed to export adapters.
type Export struct {
	ExportedAt string   `json:"exportedAt"`
	App        string   `json:"app"`
	Version    string   `json:"version"`
	Profile    *Profile `json:"profile"`
	Workbook   Workbook `json:"workbook"`
}

// NewExport snapshots s into an export record stamped with at (UTC,
// millisecond precision).
func NewExport(s *RootState, at time.Time, app, version string) Export {
	snap := s.Clone()
	return Export{
		ExportedAt: at.UTC().Format(exportTimeLayout),
		App:        app,
		Version:    version,
		Profile:    snap.Profile,
		Workbook:   snap.Workbook,
	}
}
