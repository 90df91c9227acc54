package model

import (
	"errors"
	"fmt"
)

// ErrUnknownDimension is returned for an identity-wheel key outside the
// fixed set.
var ErrUnknownDimension = errors.New("unknown identity wheel dimension")

// WheelDimension is one axis of the identity wheel.
type WheelDimension int

const (
	SelfExpression WheelDimension = iota
	Courage
	Boundaries
	Creativity
	Relationships
	Discipline
)

// WheelDimensionCount is the fixed number of identity-wheel axes.
const WheelDimensionCount = 6

var wheelKeys = [WheelDimensionCount]string{
	"selfExpression", "courage", "boundaries", "creativity", "relationships", "discipline",
}

var wheelLabels = [WheelDimensionCount]string{
	"Self-Expression", "Courage", "Boundaries", "Creativity", "Relationships", "Discipline",
}

// WheelDimensions returns the axes in display order.
func WheelDimensions() []WheelDimension {
	out := make([]WheelDimension, WheelDimensionCount)
	for i := range out {
		out[i] = WheelDimension(i)
	}
	return out
}

// Valid reports whether d is a known axis.
func (d WheelDimension) Valid() bool {
	return d >= SelfExpression && d <= Discipline
}

// Key returns the persisted JSON key.
func (d WheelDimension) Key() string {
	if !d.Valid() {
		return fmt.Sprintf("WheelDimension(%d)", int(d))
	}
	return wheelKeys[d]
}

// Label returns the human-readable axis name.
func (d WheelDimension) Label() string {
	if !d.Valid() {
		return d.Key()
	}
	return wheelLabels[d]
}

func (d WheelDimension) String() string { return d.Key() }

// ParseWheelDimension resolves a persisted key (case-insensitive).
func ParseWheelDimension(key string) (WheelDimension, error) {
	folded := foldName(key)
	for i, k := range wheelKeys {
		if foldName(k) == folded {
			return WheelDimension(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, key)
}

// Wheel holds one 0–10 score per dimension.
type Wheel [WheelDimensionCount]int

// DefaultWheel returns a wheel with every axis at DefaultWheelScore.
func DefaultWheel() Wheel {
	var w Wheel
	for i := range w {
		w[i] = DefaultWheelScore
	}
	return w
}

// Average returns the mean score across all axes.
func (w Wheel) Average() float64 {
	sum := 0
	for _, v := range w {
		sum += v
	}
	return float64(sum) / WheelDimensionCount
}

// MarshalJSON encodes the wheel as an object in dimension order.
func (w Wheel) MarshalJSON() ([]byte, error) {
	fields := make([]field, WheelDimensionCount)
	for i, v := range w {
		fields[i] = field{key: wheelKeys[i], value: v}
	}
	return encodeObject(fields)
}
