package migrate

import (
	"encoding/json"
	"sort"

	"github.com/roach88/meworkbook/internal/model"
)

// Report lists what a repair pass did.
type Report struct {
	// Filled holds the paths that were absent and received defaults. When a
	// whole object is created only its own path is listed.
	Filled []string

	// Ignored holds paths present in the record that the current schema has
	// no place for. They stay in the document but are not carried into the
	// typed state.
	Ignored []string
}

// Changed reports whether the pass added anything.
func (r Report) Changed() bool {
	return len(r.Filled) > 0
}

// Repair fills every field of doc that the current schema requires and
// doc lacks. Present values are never modified; a nested object or map of
// the wrong JSON type counts as absent. A profile of the wrong type becomes
// null. Rules run in this order:
//
//  1. ui
//  2. workbook (and its scalar fields)
//  3. workbook.months, moving month keys that differ only in case to
//     the canonical name when that slot is empty
//  4. each of the twelve months, field by field, in calendar order
//  5. workbook.yearEnd
//
// Repair mutates doc in place. Running it again on its own output reports
// no changes.
func Repair(doc *Document) Report {
	r := &repairer{}

	if doc.Profile != nil && doc.Profile.absent {
		doc.Profile = nil
		r.fill("profile")
	}

	// 1
	if doc.UI.missing() {
		doc.UI = &UIDoc{}
		r.fill("ui")
		r.quiet(func() { r.repairUI(doc.UI) })
	} else {
		r.repairUI(doc.UI)
	}

	// 2
	if doc.Workbook.missing() {
		doc.Workbook = emptyWorkbookDoc()
		r.fill("workbook")
	}
	wb := doc.Workbook
	r.fillScore(&wb.Year, model.WorkbookYear, "workbook.year")
	r.fillText(&wb.Title, model.DefaultTitle, "workbook.title")
	r.fillText(&wb.ThemeLine, "", "workbook.themeLine")

	// 3
	if wb.Months == nil {
		wb.Months = MonthDocs{}
		r.fill("workbook.months")
	}
	r.resolveMonthKeys(wb.Months)

	// 4
	year := wb.Year.Value
	known := make(map[string]bool, model.MonthCount)
	for _, m := range model.Months() {
		name := m.String()
		known[name] = true
		path := "workbook.months." + name
		if wb.Months[name].missing() {
			wb.Months[name] = monthDoc(model.BuildEmptyMonth(m, year))
			r.fill(path)
			continue
		}
		r.repairMonth(wb.Months[name], model.BuildEmptyMonth(m, year), path)
	}
	for name := range wb.Months {
		if !known[name] {
			r.ignore("workbook.months." + name)
		}
	}

	// 5
	if wb.YearEnd.missing() {
		wb.YearEnd = &YearEndDoc{}
		r.fill("workbook.yearEnd")
		r.quiet(func() { r.repairYearEnd(wb.YearEnd) })
	} else {
		r.repairYearEnd(wb.YearEnd)
	}

	sort.Strings(r.report.Ignored)
	return r.report
}

type repairer struct {
	report Report
	silent bool
}

func (r *repairer) fill(path string) {
	if !r.silent {
		r.report.Filled = append(r.report.Filled, path)
	}
}

func (r *repairer) ignore(path string) {
	if !r.silent {
		r.report.Ignored = append(r.report.Ignored, path)
	}
}

// quiet runs fn without recording, for filling the inside of an object
// that was itself just created.
func (r *repairer) quiet(fn func()) {
	prev := r.silent
	r.silent = true
	fn()
	r.silent = prev
}

func (r *repairer) fillText(p **Text, def, path string) {
	if *p == nil {
		*p = textPtr(def)
		r.fill(path)
	}
}

func (r *repairer) fillScore(p **Score, def int, path string) {
	if !(*p).present() {
		*p = scorePtr(def)
		r.fill(path)
	}
}

func (r *repairer) repairUI(ui *UIDoc) {
	def := model.DefaultUI()
	r.fillText(&ui.CurrentView, string(def.CurrentView), "ui.currentView")
	r.fillText(&ui.CurrentMonth, def.CurrentMonth.String(), "ui.currentMonth")
}

func (r *repairer) repairMonth(rec *MonthDoc, def model.MonthRecord, path string) {
	r.fillText(&rec.Theme, def.Theme, path+".theme")
	r.fillText(&rec.Reflection, def.Reflection, path+".reflection")
	r.fillText(&rec.Expression, def.Expression, path+".expression")
	r.fillText(&rec.Relationships, def.Relationships, path+".relationships")
	r.fillScore(&rec.AlignmentScore, def.AlignmentScore, path+".alignmentScore")

	if rec.Decision.missing() {
		rec.Decision = &DecisionDoc{}
		r.fill(path + ".decision")
		r.quiet(func() { r.repairDecision(rec.Decision, path+".decision") })
	} else {
		r.repairDecision(rec.Decision, path+".decision")
	}

	if rec.IdentityWheel == nil {
		rec.IdentityWheel = ScoreMap{}
		r.fill(path + ".identityWheel")
		r.quiet(func() { r.repairWheel(rec.IdentityWheel, def.IdentityWheel, path+".identityWheel") })
	} else {
		r.repairWheel(rec.IdentityWheel, def.IdentityWheel, path+".identityWheel")
	}

	if rec.DailyLogs == nil {
		rec.DailyLogs = TextMap{}
		r.fill(path + ".dailyLogs")
	}

	if rec.WeeklyLogs == nil {
		rec.WeeklyLogs = TextPtrMap{}
		r.fill(path + ".weeklyLogs")
		r.quiet(func() { r.repairWeekly(rec.WeeklyLogs, path+".weeklyLogs") })
	} else {
		r.repairWeekly(rec.WeeklyLogs, path+".weeklyLogs")
	}

	r.fillText(&rec.LastDailyDate, def.LastDailyDate, path+".lastDailyDate")
	r.fillText(&rec.LastWeeklyKey, def.LastWeeklyKey.String(), path+".lastWeeklyKey")
}

// resolveMonthKeys moves records stored under a case variant of a month
// name ("january") to the canonical key when the canonical slot is empty.
// Keys are visited in sorted order so the choice between several variants
// is stable. Variants that find the slot taken stay and are reported as
// ignored.
func (r *repairer) resolveMonthKeys(months MonthDocs) {
	keys := make([]string, 0, len(months))
	for name := range months {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	for _, name := range keys {
		m, err := model.ParseMonth(name)
		if err != nil {
			continue
		}
		canonical := m.String()
		if name == canonical || months[name].missing() || !months[canonical].missing() {
			continue
		}
		months[canonical] = months[name]
		delete(months, name)
		r.fill("workbook.months." + canonical)
	}
}

func (r *repairer) repairDecision(d *DecisionDoc, path string) {
	r.fillText(&d.Prompt, "", path+".prompt")
	r.fillText(&d.Fear, "", path+".fear")
	r.fillText(&d.CostOfInaction, "", path+".costOfInaction")
	r.fillText(&d.AlignedAction, "", path+".alignedAction")
	r.fillText(&d.SmallestStep, "", path+".smallestStep")
}

func (r *repairer) repairWheel(w map[string]*Score, def model.Wheel, path string) {
	known := make(map[string]bool, model.WheelDimensionCount)
	for _, d := range model.WheelDimensions() {
		key := d.Key()
		known[key] = true
		if !w[key].present() {
			w[key] = scorePtr(def[d])
			r.fill(path + "." + key)
		}
	}
	for key := range w {
		if !known[key] {
			r.ignore(path + "." + key)
		}
	}
}

func (r *repairer) repairWeekly(w map[string]*Text, path string) {
	known := make(map[string]bool, model.WeekCount)
	for _, k := range model.WeekKeys() {
		key := k.String()
		known[key] = true
		if w[key] == nil {
			w[key] = textPtr("")
			r.fill(path + "." + key)
		}
	}
	for key := range w {
		if !known[key] {
			r.ignore(path + "." + key)
		}
	}
}

func (r *repairer) repairYearEnd(y *YearEndDoc) {
	const path = "workbook.yearEnd"
	r.fillText(&y.StayedTrue, "", path+".stayedTrue")
	r.fillText(&y.Shifted, "", path+".shifted")
	r.fillText(&y.DecisionsThatMattered, "", path+".decisionsThatMattered")
	r.fillText(&y.IdentitySnapshot, "", path+".identitySnapshot")
	r.fillText(&y.LetterToPastSelf, "", path+".letterToPastSelf")
	r.fillText(&y.LetterToFutureSelf, "", path+".letterToFutureSelf")
}

func emptyWorkbookDoc() *WorkbookDoc {
	var wb WorkbookDoc
	mustRecode(model.BuildEmptyWorkbook(), &wb)
	return &wb
}

func monthDoc(rec model.MonthRecord) *MonthDoc {
	var out MonthDoc
	mustRecode(rec, &out)
	return &out
}

// mustRecode converts a default model value into its document form. The
// inputs are built by model and always encode.
func mustRecode(in, out any) {
	data, err := model.Marshal(in)
	if err != nil {
		panic("migrate: encode defaults: " + err.Error())
	}
	if err := json.Unmarshal(data, out); err != nil {
		panic("migrate: decode defaults: " + err.Error())
	}
}
