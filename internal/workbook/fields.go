package workbook

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/meworkbook/internal/model"
)

// Month field paths accepted by EditMonthField.
const (
	PathTheme          = "theme"
	PathReflection     = "reflection"
	PathExpression     = "expression"
	PathRelationships  = "relationships"
	PathAlignmentScore = "alignmentScore"
	pathDecision       = "decision"
	pathIdentityWheel  = "identityWheel"
)

// Year-end fields accepted by EditYearEnd.
var yearEndFields = []string{
	"stayedTrue",
	"shifted",
	"decisionsThatMattered",
	"identitySnapshot",
	"letterToPastSelf",
	"letterToFutureSelf",
}

// YearEndFields returns the field names EditYearEnd accepts, in page order.
func YearEndFields() []string {
	return append([]string(nil), yearEndFields...)
}

// monthEdit is a parsed EditMonthField call, ready to apply.
type monthEdit func(rec *model.MonthRecord)

// parseMonthEdit resolves path and value into an edit without touching any
// state, so a rejected edit leaves nothing half applied.
func parseMonthEdit(path, value string) (monthEdit, error) {
	head, sub, nested := strings.Cut(path, ".")

	if nested {
		switch head {
		case pathDecision:
			return parseDecisionEdit(sub, value, path)
		case pathIdentityWheel:
			dim, err := model.ParseWheelDimension(sub)
			if err != nil {
				return nil, newError(ErrCodeUnknownDimension, path, err, "unknown identity wheel dimension %q", sub)
			}
			score, err := parseScore(value, path)
			if err != nil {
				return nil, err
			}
			return func(rec *model.MonthRecord) {
				rec.IdentityWheel[dim] = model.ClampWheel(score)
			}, nil
		}
		return nil, newError(ErrCodeUnknownField, path, nil, "unknown month field %q", path)
	}

	switch path {
	case PathTheme:
		return func(rec *model.MonthRecord) { rec.Theme = value }, nil
	case PathReflection:
		return func(rec *model.MonthRecord) { rec.Reflection = value }, nil
	case PathExpression:
		return func(rec *model.MonthRecord) { rec.Expression = value }, nil
	case PathRelationships:
		return func(rec *model.MonthRecord) { rec.Relationships = value }, nil
	case PathAlignmentScore:
		score, err := parseScore(value, path)
		if err != nil {
			return nil, err
		}
		return func(rec *model.MonthRecord) {
			rec.AlignmentScore = model.ClampAlignment(score)
		}, nil
	}
	return nil, newError(ErrCodeUnknownField, path, nil, "unknown month field %q", path)
}

func parseDecisionEdit(sub, value, path string) (monthEdit, error) {
	var set func(d *model.Decision)
	switch sub {
	case "prompt":
		set = func(d *model.Decision) { d.Prompt = value }
	case "fear":
		set = func(d *model.Decision) { d.Fear = value }
	case "costOfInaction":
		set = func(d *model.Decision) { d.CostOfInaction = value }
	case "alignedAction":
		set = func(d *model.Decision) { d.AlignedAction = value }
	case "smallestStep":
		set = func(d *model.Decision) { d.SmallestStep = value }
	default:
		return nil, newError(ErrCodeUnknownField, path, nil, "unknown decision field %q", sub)
	}
	return func(rec *model.MonthRecord) { set(&rec.Decision) }, nil
}

// parseScore reads a decimal number and rounds it to the nearest integer.
// Range limits are applied by the caller's clamp.
func parseScore(value, field string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, newError(ErrCodeValidation, field, err, "%q is not a number", value)
	}
	// Beyond any valid score; clamping maps it to the bound.
	f = math.Max(-1e9, math.Min(f, 1e9))
	return int(math.Round(f)), nil
}

// yearEndField returns a pointer to the named year-end page.
func yearEndField(y *model.YearEnd, name string) (*string, bool) {
	switch name {
	case "stayedTrue":
		return &y.StayedTrue, true
	case "shifted":
		return &y.Shifted, true
	case "decisionsThatMattered":
		return &y.DecisionsThatMattered, true
	case "identitySnapshot":
		return &y.IdentitySnapshot, true
	case "letterToPastSelf":
		return &y.LetterToPastSelf, true
	case "letterToFutureSelf":
		return &y.LetterToFutureSelf, true
	}
	return nil, false
}

// parseLogDate checks that date is a calendar date inside month m of year.
func parseLogDate(date string, m model.Month, year int) (string, error) {
	date = strings.TrimSpace(date)
	t, err := parseISODate(date)
	if err != nil {
		return "", newError(ErrCodeInvalidDate, "date", err, "%q is not a YYYY-MM-DD date", date)
	}
	if t.Year() != year || int(t.Month()) != m.Number() {
		return "", newError(ErrCodeInvalidDate, "date", nil, "%s is not in %s %d", date, m, year)
	}
	return date, nil
}

func parseISODate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
