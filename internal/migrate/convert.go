package migrate

import (
	"fmt"

	"github.com/roach88/meworkbook/internal/derive"
	"github.com/roach88/meworkbook/internal/model"
)

// Migrate repairs doc and converts it to the typed state. Profile insights
// are recomputed from the profile. Out-of-range scores are clamped and
// unreadable UI cursors fall back to their defaults; both are transient or
// invalid data, never user content.
func Migrate(doc *Document) (*model.RootState, Report) {
	report := Repair(doc)
	return toState(doc), report
}

// MigrateBytes decodes a persisted record and migrates it.
func MigrateBytes(data []byte) (*model.RootState, Report, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, Report{}, err
	}
	s, report := Migrate(doc)
	return s, report, nil
}

// toState converts a repaired document. Fields a repaired document always
// has are still checked, so toState never panics on partial input.
func toState(doc *Document) *model.RootState {
	s := model.NewRootState()

	if p := doc.Profile; !p.missing() {
		s.Profile = &model.Profile{
			Name:       string(p.Name),
			Birthdate:  string(p.Birthdate),
			Birthplace: string(p.Birthplace),
		}
	}

	if ui := doc.UI; !ui.missing() {
		if v, err := model.ParseView(ui.CurrentView.String()); err == nil {
			s.UI.CurrentView = v
		}
		if m, err := model.ParseMonth(ui.CurrentMonth.String()); err == nil {
			s.UI.CurrentMonth = m
		}
	}

	wb := &s.Workbook
	if d := doc.Workbook; !d.missing() {
		if d.Year.present() {
			wb.Year = d.Year.Value
		}
		if d.Title != nil {
			wb.Title = string(*d.Title)
		}
		if d.ThemeLine != nil {
			wb.ThemeLine = string(*d.ThemeLine)
		}
		for _, m := range model.Months() {
			wb.Months[m] = monthRecord(d.Months[m.String()], m, wb.Year)
		}
		if y := d.YearEnd; !y.missing() {
			wb.YearEnd = model.YearEnd{
				StayedTrue:            y.StayedTrue.String(),
				Shifted:               y.Shifted.String(),
				DecisionsThatMattered: y.DecisionsThatMattered.String(),
				IdentitySnapshot:      y.IdentitySnapshot.String(),
				LetterToPastSelf:      y.LetterToPastSelf.String(),
				LetterToFutureSelf:    y.LetterToFutureSelf.String(),
			}
		}
	}

	birthdate := ""
	if s.Profile != nil {
		birthdate = s.Profile.Birthdate
	}
	wb.ProfileInsights = derive.Insights(birthdate, wb.Year)
	return s
}

func monthRecord(d *MonthDoc, m model.Month, year int) model.MonthRecord {
	rec := model.BuildEmptyMonth(m, year)
	if d.missing() {
		return rec
	}
	setText(&rec.Theme, d.Theme)
	setText(&rec.Reflection, d.Reflection)
	setText(&rec.Expression, d.Expression)
	setText(&rec.Relationships, d.Relationships)
	if d.AlignmentScore.present() {
		rec.AlignmentScore = model.ClampAlignment(d.AlignmentScore.Value)
	}
	if dec := d.Decision; !dec.missing() {
		setText(&rec.Decision.Prompt, dec.Prompt)
		setText(&rec.Decision.Fear, dec.Fear)
		setText(&rec.Decision.CostOfInaction, dec.CostOfInaction)
		setText(&rec.Decision.AlignedAction, dec.AlignedAction)
		setText(&rec.Decision.SmallestStep, dec.SmallestStep)
	}
	for _, dim := range model.WheelDimensions() {
		if v := d.IdentityWheel[dim.Key()]; v.present() {
			rec.IdentityWheel[dim] = model.ClampWheel(v.Value)
		}
	}
	for date, text := range d.DailyLogs {
		rec.DailyLogs[date] = string(text)
	}
	for _, k := range model.WeekKeys() {
		setText(&rec.WeeklyLogs[k], d.WeeklyLogs[k.String()])
	}
	setText(&rec.LastDailyDate, d.LastDailyDate)
	if k, err := model.ParseWeekKey(d.LastWeeklyKey.String()); err == nil {
		rec.LastWeeklyKey = k
	}
	return rec
}

func setText(dst *string, src *Text) {
	if src != nil {
		*dst = string(*src)
	}
}

// Summary renders a report for logging.
func (r Report) Summary() string {
	return fmt.Sprintf("filled=%d ignored=%d", len(r.Filled), len(r.Ignored))
}
