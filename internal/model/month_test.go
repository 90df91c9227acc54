package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in   string
		want Month
	}{
		{"January", January},
		{"january", January},
		{"  MARCH ", March},
		{"December", December},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMonth(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMonth_Unknown(t *testing.T) {
	for _, in := range []string{"", "Jan", "Smarch", "13"} {
		_, err := ParseMonth(in)
		require.Error(t, err, in)
		assert.True(t, errors.Is(err, ErrUnknownMonth))
	}
}

func TestMonths_CalendarOrder(t *testing.T) {
	months := Months()
	require.Len(t, months, MonthCount)
	for i, m := range months {
		assert.Equal(t, i+1, m.Number())
	}
	assert.Equal(t, "January", months[0].String())
	assert.Equal(t, "December", months[11].String())
}

func TestMonth_TextRoundTrip(t *testing.T) {
	for _, m := range Months() {
		text, err := m.MarshalText()
		require.NoError(t, err)

		var back Month
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, m, back)
	}

	_, err := Month(12).MarshalText()
	assert.Error(t, err)
}

func TestParseWeekKey(t *testing.T) {
	k, err := ParseWeekKey("Week3")
	require.NoError(t, err)
	assert.Equal(t, Week3, k)

	_, err = ParseWeekKey("week6")
	assert.True(t, errors.Is(err, ErrUnknownWeek))
}

func TestParseWheelDimension(t *testing.T) {
	d, err := ParseWheelDimension("selfexpression")
	require.NoError(t, err)
	assert.Equal(t, SelfExpression, d)
	assert.Equal(t, "Self-Expression", d.Label())

	_, err = ParseWheelDimension("patience")
	assert.True(t, errors.Is(err, ErrUnknownDimension))
}

func TestParseView(t *testing.T) {
	v, err := ParseView("yearend")
	require.NoError(t, err)
	assert.Equal(t, ViewYearEnd, v)

	_, err = ParseView("settings")
	assert.True(t, errors.Is(err, ErrUnknownView))
}
