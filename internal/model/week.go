package model

import (
	"errors"
	"fmt"
)

// ErrUnknownWeek is returned for a weekly-log key outside week1..week5.
var ErrUnknownWeek = errors.New("unknown week key")

// WeekKey identifies one of the five weekly-log slots in a month.
type WeekKey int

const (
	Week1 WeekKey = iota
	Week2
	Week3
	Week4
	Week5
)

// WeekCount is the fixed number of weekly slots per month.
const WeekCount = 5

// WeekKeys returns every slot in order.
func WeekKeys() []WeekKey {
	out := make([]WeekKey, WeekCount)
	for i := range out {
		out[i] = WeekKey(i)
	}
	return out
}

// Valid reports whether k is week1..week5.
func (k WeekKey) Valid() bool {
	return k >= Week1 && k <= Week5
}

// String returns the persisted key, e.g. "week3".
func (k WeekKey) String() string {
	return fmt.Sprintf("week%d", int(k)+1)
}

// ParseWeekKey resolves "week1".."week5" (case-insensitive).
func ParseWeekKey(s string) (WeekKey, error) {
	folded := foldName(s)
	for _, k := range WeekKeys() {
		if k.String() == folded {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeek, s)
}

// MarshalText encodes the key as "weekN".
func (k WeekKey) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownWeek, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes "weekN".
func (k *WeekKey) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// WeeklyLogs holds one free-text entry per week slot. All slots always exist.
type WeeklyLogs [WeekCount]string

// MarshalJSON encodes the logs as an object keyed week1..week5.
func (w WeeklyLogs) MarshalJSON() ([]byte, error) {
	fields := make([]field, WeekCount)
	for i, v := range w {
		fields[i] = field{key: WeekKey(i).String(), value: v}
	}
	return encodeObject(fields)
}
