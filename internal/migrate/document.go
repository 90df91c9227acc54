package migrate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/meworkbook/internal/model"
)

// ErrNotObject is returned by Decode when the record is not a JSON object.
var ErrNotObject = errors.New("record is not a JSON object")

// Document is the persisted root record with every field optional. A nil
// pointer or map means the field was absent from the record.
//
// Nested objects and maps of the wrong JSON type (a string where an object
// belongs, an array for a map) are treated as absent rather than failing
// the whole record; only the top level must be an object.
type Document struct {
	Profile  *ProfileDoc  `json:"profile"`
	Workbook *WorkbookDoc `json:"workbook,omitempty"`
	UI       *UIDoc       `json:"ui,omitempty"`
}

// ProfileDoc is the persisted profile.
type ProfileDoc struct {
	Name       Text `json:"name"`
	Birthdate  Text `json:"birthdate"`
	Birthplace Text `json:"birthplace"`

	absent bool
}

// UIDoc is the persisted UI cursor.
type UIDoc struct {
	CurrentView  *Text `json:"currentView,omitempty"`
	CurrentMonth *Text `json:"currentMonth,omitempty"`

	absent bool
}

// WorkbookDoc is the persisted workbook. Profile insights are not decoded:
// they are derived data and are recomputed on every migration.
type WorkbookDoc struct {
	Year      *Score      `json:"year,omitempty"`
	Title     *Text       `json:"title,omitempty"`
	ThemeLine *Text       `json:"themeLine,omitempty"`
	Months    MonthDocs   `json:"months"`
	YearEnd   *YearEndDoc `json:"yearEnd,omitempty"`

	absent bool
}

// MonthDoc is one persisted month record.
type MonthDoc struct {
	Theme          *Text        `json:"theme,omitempty"`
	Reflection     *Text        `json:"reflection,omitempty"`
	Expression     *Text        `json:"expression,omitempty"`
	Relationships  *Text        `json:"relationships,omitempty"`
	AlignmentScore *Score       `json:"alignmentScore,omitempty"`
	Decision       *DecisionDoc `json:"decision,omitempty"`
	IdentityWheel  ScoreMap     `json:"identityWheel"`
	DailyLogs      TextMap      `json:"dailyLogs"`
	WeeklyLogs     TextPtrMap   `json:"weeklyLogs"`
	LastDailyDate  *Text        `json:"lastDailyDate,omitempty"`
	LastWeeklyKey  *Text        `json:"lastWeeklyKey,omitempty"`

	absent bool
}

// DecisionDoc is the persisted decision matrix.
type DecisionDoc struct {
	Prompt         *Text `json:"prompt,omitempty"`
	Fear           *Text `json:"fear,omitempty"`
	CostOfInaction *Text `json:"costOfInaction,omitempty"`
	AlignedAction  *Text `json:"alignedAction,omitempty"`
	SmallestStep   *Text `json:"smallestStep,omitempty"`

	absent bool
}

// YearEndDoc is the persisted year-end section.
type YearEndDoc struct {
	StayedTrue            *Text `json:"stayedTrue,omitempty"`
	Shifted               *Text `json:"shifted,omitempty"`
	DecisionsThatMattered *Text `json:"decisionsThatMattered,omitempty"`
	IdentitySnapshot      *Text `json:"identitySnapshot,omitempty"`
	LetterToPastSelf      *Text `json:"letterToPastSelf,omitempty"`
	LetterToFutureSelf    *Text `json:"letterToFutureSelf,omitempty"`

	absent bool
}

// MonthDocs maps stored month keys to month records.
type MonthDocs map[string]*MonthDoc

// ScoreMap maps identity-wheel keys to scores.
type ScoreMap map[string]*Score

// TextMap maps daily-log dates to entries.
type TextMap map[string]Text

// TextPtrMap maps weekly-log keys to entries.
type TextPtrMap map[string]*Text

// decodeObject unmarshals b into v when b is a JSON object and reports
// whether it was one. Any other JSON value leaves v untouched.
func decodeObject(b []byte, v any) (bool, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return false, nil
	}
	return true, json.Unmarshal(b, v)
}

// UnmarshalJSON treats a non-object as an absent profile.
func (p *ProfileDoc) UnmarshalJSON(b []byte) error {
	type plain ProfileDoc
	ok, err := decodeObject(b, (*plain)(p))
	p.absent = !ok
	return err
}

// UnmarshalJSON treats a non-object as an absent ui section.
func (u *UIDoc) UnmarshalJSON(b []byte) error {
	type plain UIDoc
	ok, err := decodeObject(b, (*plain)(u))
	u.absent = !ok
	return err
}

// UnmarshalJSON treats a non-object as an absent workbook.
func (w *WorkbookDoc) UnmarshalJSON(b []byte) error {
	type plain WorkbookDoc
	ok, err := decodeObject(b, (*plain)(w))
	w.absent = !ok
	return err
}

// UnmarshalJSON treats a non-object as an absent month.
func (m *MonthDoc) UnmarshalJSON(b []byte) error {
	type plain MonthDoc
	ok, err := decodeObject(b, (*plain)(m))
	m.absent = !ok
	return err
}

// UnmarshalJSON treats a non-object as an absent decision matrix.
func (d *DecisionDoc) UnmarshalJSON(b []byte) error {
	type plain DecisionDoc
	ok, err := decodeObject(b, (*plain)(d))
	d.absent = !ok
	return err
}

// UnmarshalJSON treats a non-object as an absent year-end section.
func (y *YearEndDoc) UnmarshalJSON(b []byte) error {
	type plain YearEndDoc
	ok, err := decodeObject(b, (*plain)(y))
	y.absent = !ok
	return err
}

// UnmarshalJSON decodes an object; anything else leaves the map absent.
func (m *MonthDocs) UnmarshalJSON(b []byte) error {
	*m = nil
	_, err := decodeObject(b, (*map[string]*MonthDoc)(m))
	return err
}

// UnmarshalJSON decodes an object; anything else leaves the map absent.
func (m *ScoreMap) UnmarshalJSON(b []byte) error {
	*m = nil
	_, err := decodeObject(b, (*map[string]*Score)(m))
	return err
}

// UnmarshalJSON decodes an object; anything else leaves the map absent.
func (m *TextMap) UnmarshalJSON(b []byte) error {
	*m = nil
	_, err := decodeObject(b, (*map[string]Text)(m))
	return err
}

// UnmarshalJSON decodes an object; anything else leaves the map absent.
func (m *TextPtrMap) UnmarshalJSON(b []byte) error {
	*m = nil
	_, err := decodeObject(b, (*map[string]*Text)(m))
	return err
}

// missing reports whether a decoded object pointer should be treated as
// absent.
func (p *ProfileDoc) missing() bool  { return p == nil || p.absent }
func (u *UIDoc) missing() bool       { return u == nil || u.absent }
func (w *WorkbookDoc) missing() bool { return w == nil || w.absent }
func (m *MonthDoc) missing() bool    { return m == nil || m.absent }
func (d *DecisionDoc) missing() bool { return d == nil || d.absent }
func (y *YearEndDoc) missing() bool  { return y == nil || y.absent }

// Decode parses a persisted record. Anything that is not a JSON object
// (including null) is rejected.
func Decode(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotObject
	}
	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &doc, nil
}

// FromState converts a typed state into a fully populated document.
func FromState(s *model.RootState) (*Document, error) {
	data, err := model.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return Decode(data)
}

// Text is a persisted string. Legacy numbers and booleans are kept in their
// JSON text form; objects and arrays decode as "".
type Text string

// UnmarshalJSON implements lenient string decoding.
func (t *Text) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		*t = Text(x)
	case float64:
		*t = Text(strconv.FormatFloat(x, 'f', -1, 64))
	case bool:
		*t = Text(strconv.FormatBool(x))
	default:
		*t = ""
	}
	return nil
}

func textPtr(s string) *Text {
	t := Text(s)
	return &t
}

func (t *Text) String() string {
	if t == nil {
		return ""
	}
	return string(*t)
}

// scoreLimit bounds decoded magnitudes so conversion to int cannot overflow.
const scoreLimit = 1e9

// Score is a persisted integer. It accepts JSON numbers (rounded) and
// numeric strings. Any other value decodes as invalid and is treated as
// absent by Repair.
type Score struct {
	Value int
	Valid bool
}

// UnmarshalJSON implements lenient integer decoding.
func (s *Score) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = Score{}
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	f = math.Max(-scoreLimit, math.Min(scoreLimit, math.Round(f)))
	*s = Score{Value: int(f), Valid: true}
	return nil
}

// MarshalJSON encodes a valid score as a number and an invalid one as null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(s.Value), 10), nil
}

func scorePtr(v int) *Score {
	return &Score{Value: v, Valid: true}
}

func (s *Score) present() bool {
	return s != nil && s.Valid
}
