package model

import (
	"errors"
	"fmt"
)

// ErrUnknownView is returned for a view name outside the fixed set.
var ErrUnknownView = errors.New("unknown view")

// View is the screen the UI adapter last showed.
type View string

const (
	ViewHome      View = "home"
	ViewDashboard View = "dashboard"
	ViewMonth     View = "month"
	ViewYearEnd   View = "yearEnd"
)

// ParseView resolves a view name (case-insensitive).
func ParseView(s string) (View, error) {
	folded := foldName(s)
	for _, v := range []View{ViewHome, ViewDashboard, ViewMonth, ViewYearEnd} {
		if foldName(string(v)) == folded {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Profile is the single user's identity. Birthdate is "YYYY-MM-DD".
type Profile struct {
	Name       string `json:"name"`
	Birthdate  string `json:"birthdate"`
	Birthplace string `json:"birthplace"`
}

// ChineseZodiac is the element/animal pair for a birth year.
type ChineseZodiac struct {
	Element string `json:"element"`
	Animal  string `json:"animal"`
}

// DerivedInsights are computed from the profile birthdate and the workbook
// year. They are never edited directly.
type DerivedInsights struct {
	LifePath       *int          `json:"lifePath"`
	BirthdayNumber *int          `json:"birthdayNumber"`
	PersonalYear   *int          `json:"personalYear"`
	SunSign        string        `json:"sunSign"`
	ChineseZodiac  ChineseZodiac `json:"chineseZodiac"`
}

// Decision is the monthly decision matrix.
type Decision struct {
	Prompt         string `json:"prompt"`
	Fear           string `json:"fear"`
	CostOfInaction string `json:"costOfInaction"`
	AlignedAction  string `json:"alignedAction"`
	SmallestStep   string `json:"smallestStep"`
}

// MonthRecord is one month's worksheet.
type MonthRecord struct {
	Theme          string            `json:"theme"`
	Reflection     string            `json:"reflection"`
	Expression     string            `json:"expression"`
	Relationships  string            `json:"relationships"`
	AlignmentScore int               `json:"alignmentScore"`
	Decision       Decision          `json:"decision"`
	IdentityWheel  Wheel             `json:"identityWheel"`
	DailyLogs      map[string]string `json:"dailyLogs"`
	WeeklyLogs     WeeklyLogs        `json:"weeklyLogs"`

	// UI cursors. Resetting them loses nothing.
	LastDailyDate string  `json:"lastDailyDate"`
	LastWeeklyKey WeekKey `json:"lastWeeklyKey"`
}

// MonthSet holds exactly one record per month, indexed by Month.
type MonthSet [MonthCount]MonthRecord

// MarshalJSON encodes the set as an object keyed by month name in calendar
// order.
func (s MonthSet) MarshalJSON() ([]byte, error) {
	fields := make([]field, MonthCount)
	for i := range s {
		fields[i] = field{key: monthNames[i], value: s[i]}
	}
	return encodeObject(fields)
}

// YearEnd holds the year-end extraction pages.
type YearEnd struct {
	StayedTrue            string `json:"stayedTrue"`
	Shifted               string `json:"shifted"`
	DecisionsThatMattered string `json:"decisionsThatMattered"`
	IdentitySnapshot      string `json:"identitySnapshot"`
	LetterToPastSelf      string `json:"letterToPastSelf"`
	LetterToFutureSelf    string `json:"letterToFutureSelf"`
}

// Workbook is the year of content.
type Workbook struct {
	Year            int             `json:"year"`
	Title           string          `json:"title"`
	ThemeLine       string          `json:"themeLine"`
	ProfileInsights DerivedInsights `json:"profileInsights"`
	Months          MonthSet        `json:"months"`
	YearEnd         YearEnd         `json:"yearEnd"`
}

// Month returns a pointer to the record for m. m must be valid.
func (w *Workbook) Month(m Month) *MonthRecord {
	return &w.Months[m]
}

// UIState records where the user was. Not semantically meaningful.
type UIState struct {
	CurrentView  View  `json:"currentView"`
	CurrentMonth Month `json:"currentMonth"`
}

// RootState is the single unit of persistence.
type RootState struct {
	Profile  *Profile `json:"profile"`
	Workbook Workbook `json:"workbook"`
	UI       UIState  `json:"ui"`
}

// Clone returns a deep copy that shares no mutable data with s.
func (s *RootState) Clone() *RootState {
	out := *s
	if s.Profile != nil {
		p := *s.Profile
		out.Profile = &p
	}
	out.Workbook.ProfileInsights = s.Workbook.ProfileInsights.Clone()
	for i := range out.Workbook.Months {
		logs := s.Workbook.Months[i].DailyLogs
		copied := make(map[string]string, len(logs))
		for k, v := range logs {
			copied[k] = v
		}
		out.Workbook.Months[i].DailyLogs = copied
	}
	return &out
}

// Clone copies the insight pointers.
func (d DerivedInsights) Clone() DerivedInsights {
	d.LifePath = cloneInt(d.LifePath)
	d.BirthdayNumber = cloneInt(d.BirthdayNumber)
	d.PersonalYear = cloneInt(d.PersonalYear)
	return d
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
