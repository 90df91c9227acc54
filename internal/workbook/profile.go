package workbook

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/roach88/meworkbook/internal/derive"
	"github.com/roach88/meworkbook/internal/model"
)

// Owner reserves a workbook title for one named profile.
type Owner struct {
	Name  string
	Title string
}

// matches reports whether name is the owner's, ignoring surrounding space
// and case.
func (o Owner) matches(name string) bool {
	if o.Name == "" || o.Title == "" {
		return false
	}
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(name)) == fold.String(strings.TrimSpace(o.Name))
}

// validateProfile trims the inputs and checks the required fields.
func validateProfile(name, birthdate, birthplace string) (model.Profile, error) {
	p := model.Profile{
		Name:       strings.TrimSpace(name),
		Birthdate:  strings.TrimSpace(birthdate),
		Birthplace: strings.TrimSpace(birthplace),
	}
	if p.Name == "" {
		return model.Profile{}, newError(ErrCodeValidation, "name", nil, "name is required")
	}
	if p.Birthdate == "" {
		return model.Profile{}, newError(ErrCodeValidation, "birthdate", nil, "birthdate is required")
	}
	if !derive.ValidDate(p.Birthdate) {
		return model.Profile{}, newError(ErrCodeInvalidDate, "birthdate", nil, "birthdate %q is not a YYYY-MM-DD date", p.Birthdate)
	}
	return p, nil
}

// applyProfile sets p on s and applies the generated theme. A month theme
// is replaced only while it is empty, the static default, or the theme the
// previous profile generated for that month; anything else is a user edit.
func applyProfile(s *model.RootState, prev *model.Profile, p model.Profile, owner Owner) {
	wb := &s.Workbook
	s.Profile = &p

	var prevTheme derive.Theme
	hadPrev := false
	if prev != nil {
		prevTheme, hadPrev = derive.GenerateTheme(*prev, wb.Year)
	}

	th, ok := derive.GenerateTheme(p, wb.Year)
	if !ok {
		return
	}

	wb.ThemeLine = th.ThemeLine
	wb.ProfileInsights = th.Insights
	for _, m := range model.Months() {
		rec := wb.Month(m)
		replaceable := rec.Theme == "" ||
			rec.Theme == model.DefaultTheme(m) ||
			(hadPrev && rec.Theme == prevTheme.MonthTheme(m))
		if replaceable {
			rec.Theme = th.MonthTheme(m)
		}
	}
	applyOwnerTitle(wb, p.Name, owner, th.Title)
}

// applyOwnerTitle gives the owner the reserved title and everyone else
// the generated one.
func applyOwnerTitle(wb *model.Workbook, name string, owner Owner, generated string) {
	if owner.matches(name) {
		wb.Title = owner.Title
		return
	}
	wb.Title = generated
}
