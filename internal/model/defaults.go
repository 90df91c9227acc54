package model

import "fmt"

const (
	// WorkbookYear is the year every workbook covers.
	WorkbookYear = 2026

	// DefaultTitle is the neutral workbook title.
	DefaultTitle = "2026 Personal Workbook"

	DefaultAlignmentScore = 50
	MaxAlignmentScore     = 100
	DefaultWheelScore     = 5
	MaxWheelScore         = 10
)

var defaultThemes = [MonthCount]string{
	January:   "Where I Am Now",
	February:  "Choice",
	March:     "Momentum",
	April:     "Truth in Motion",
	May:       "Creative Bloom",
	June:      "Alignment",
	July:      "Expression",
	August:    "Courage Month",
	September: "Integration",
	October:   "Stability",
	November:  "Protection",
	December:  "Living It Out Loud",
}

// DefaultTheme returns the static theme for m.
func DefaultTheme(m Month) string {
	if !m.Valid() {
		return ""
	}
	return defaultThemes[m]
}

// FirstDay returns the ISO date of the first day of m in year.
func FirstDay(m Month, year int) string {
	return fmt.Sprintf("%04d-%02d-01", year, m.Number())
}

// DefaultDecision returns an empty decision matrix.
func DefaultDecision() Decision {
	return Decision{}
}

// BuildEmptyMonth returns the default record for m in year.
func BuildEmptyMonth(m Month, year int) MonthRecord {
	return MonthRecord{
		Theme:          DefaultTheme(m),
		AlignmentScore: DefaultAlignmentScore,
		Decision:       DefaultDecision(),
		IdentityWheel:  DefaultWheel(),
		DailyLogs:      map[string]string{},
		LastDailyDate:  FirstDay(m, year),
		LastWeeklyKey:  Week1,
	}
}

// BuildEmptyWorkbook returns the default workbook with all twelve months.
func BuildEmptyWorkbook() Workbook {
	wb := Workbook{
		Year:  WorkbookYear,
		Title: DefaultTitle,
	}
	for _, m := range Months() {
		wb.Months[m] = BuildEmptyMonth(m, wb.Year)
	}
	return wb
}

// DefaultUI returns the UI state of a first run.
func DefaultUI() UIState {
	return UIState{CurrentView: ViewHome, CurrentMonth: January}
}

// NewRootState returns a fresh state with no profile.
func NewRootState() *RootState {
	return &RootState{
		Workbook: BuildEmptyWorkbook(),
		UI:       DefaultUI(),
	}
}

// ClampAlignment limits an alignment score to 0..MaxAlignmentScore.
func ClampAlignment(score int) int {
	return clamp(score, 0, MaxAlignmentScore)
}

// ClampWheel limits an identity-wheel score to 0..MaxWheelScore.
func ClampWheel(score int) int {
	return clamp(score, 0, MaxWheelScore)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
