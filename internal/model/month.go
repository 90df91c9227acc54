package model

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownMonth is returned when a month name is not one of the twelve
// calendar months.
var ErrUnknownMonth = errors.New("unknown month")

// Month identifies one of the twelve calendar months. The zero value is
// January; values are valid indexes into MonthSet.
type Month int

const (
	January Month = iota
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

// MonthCount is the fixed number of month records in a workbook.
const MonthCount = 12

var monthNames = [MonthCount]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Months returns all months in calendar order.
func Months() []Month {
	out := make([]Month, MonthCount)
	for i := range out {
		out[i] = Month(i)
	}
	return out
}

// Valid reports whether m is one of the twelve months.
func (m Month) Valid() bool {
	return m >= January && m <= December
}

// String returns the English month name.
func (m Month) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m]
}

// Number returns the 1-based calendar number (January = 1).
func (m Month) Number() int {
	return int(m) + 1
}

// ParseMonth resolves a month name, ignoring case and surrounding space.
// Unknown names fail rather than map to a default.
func ParseMonth(name string) (Month, error) {
	key := foldName(name)
	for i, n := range monthNames {
		if foldName(n) == key {
			return Month(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMonth, name)
}

// MarshalText encodes the month as its name.
func (m Month) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMonth, int(m))
	}
	return []byte(monthNames[m]), nil
}

// UnmarshalText decodes a month name.
func (m *Month) UnmarshalText(text []byte) error {
	parsed, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// foldName applies Unicode case folding. A Caser is stateful, so one is
// created per call.
func foldName(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
