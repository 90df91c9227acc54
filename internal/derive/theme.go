package derive

import (
	"fmt"
	"strings"

	"github.com/roach88/meworkbook/internal/model"
)

// Theme is the generated content for a profile and year.
type Theme struct {
	Title     string
	ThemeLine string

	// MonthThemes holds overrides for the hinted months only. Months absent
	// from the map keep their static default.
	MonthThemes map[model.Month]string

	Insights model.DerivedInsights
}

// hintSource selects which hint table feeds a month override.
type hintSource int

const (
	fromPersonalYear hintSource = iota
	fromSunSign
)

var hintedMonths = []struct {
	month  model.Month
	source hintSource
}{
	{model.February, fromPersonalYear},
	{model.May, fromSunSign},
	{model.August, fromPersonalYear},
	{model.December, fromSunSign},
}

// GenerateTheme combines the personal year, life path, sun sign and Chinese
// zodiac of profile into a title, a one-line theme and month overrides.
// ok is false when the birthdate is missing or malformed; callers must then
// leave their fields unchanged.
func GenerateTheme(profile model.Profile, targetYear int) (Theme, bool) {
	if !ValidDate(profile.Birthdate) {
		return Theme{}, false
	}
	insights := Insights(profile.Birthdate, targetYear)
	py := *insights.PersonalYear
	lp := *insights.LifePath

	words, ok := yearWords[py]
	if !ok {
		words = fallbackYearWords
	}
	guidance, ok := lifePathGuidance[lp]
	if !ok {
		guidance = fallbackGuidance
	}
	flavor, ok := signFlavor[insights.SunSign]
	if !ok {
		flavor = fallbackFlavor
	}
	zodiac := insights.ChineseZodiac

	th := Theme{
		Title: fmt.Sprintf("%d: %s", targetYear, strings.Join(words[:], " · ")),
		ThemeLine: fmt.Sprintf("Personal Year %d: %s Move %s, carrying %s %s energy.",
			py, guidance, flavor, zodiac.Element, zodiac.Animal),
		MonthThemes: make(map[model.Month]string, len(hintedMonths)),
		Insights:    insights,
	}
	for _, hm := range hintedMonths {
		th.MonthThemes[hm.month] = model.DefaultTheme(hm.month) + ": " + monthHint(hm.source, py, insights.SunSign)
	}
	return th, true
}

func monthHint(src hintSource, py int, sign string) string {
	if src == fromSunSign {
		if h, ok := signHints[sign]; ok {
			return h
		}
		return fallbackSignHint
	}
	if h, ok := yearHints[py]; ok {
		return h
	}
	return fallbackYearHint
}

// MonthTheme returns the theme th assigns to m: the override when present,
// otherwise the static default.
func (th Theme) MonthTheme(m model.Month) string {
	if t, ok := th.MonthThemes[m]; ok {
		return t
	}
	return model.DefaultTheme(m)
}
