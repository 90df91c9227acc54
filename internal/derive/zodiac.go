package derive

import (
	"github.com/roach88/meworkbook/internal/model"
)

// signStart is the first day of a sign's inclusive range.
type signStart struct {
	month, day int
	sign       string
}

// Ordered by start date within the calendar year. Dates before the first
// entry (and from Dec 22) belong to Capricorn.
var signStarts = []signStart{
	{1, 20, "Aquarius"},
	{2, 19, "Pisces"},
	{3, 21, "Aries"},
	{4, 20, "Taurus"},
	{5, 21, "Gemini"},
	{6, 21, "Cancer"},
	{7, 23, "Leo"},
	{8, 23, "Virgo"},
	{9, 23, "Libra"},
	{10, 23, "Scorpio"},
	{11, 22, "Sagittarius"},
	{12, 22, "Capricorn"},
}

// SunSign maps a birthdate to its Western zodiac sign. Returns "" for a
// missing or malformed date.
func SunSign(iso string) string {
	d, ok := parseBirthdate(iso)
	if !ok {
		return ""
	}
	return sunSignFor(d.month, d.day)
}

func sunSignFor(month, day int) string {
	sign := "Capricorn"
	for _, s := range signStarts {
		if month > s.month || (month == s.month && day >= s.day) {
			sign = s.sign
		}
	}
	return sign
}

var animals = [12]string{
	"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake",
	"Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig",
}

var stems = [10]string{
	"Wood", "Wood", "Fire", "Fire", "Earth", "Earth",
	"Metal", "Metal", "Water", "Water",
}

// zodiacEpoch is a Wood Rat year; both cycles start there.
const zodiacEpoch = 1984

// ChineseZodiac returns the element and animal for a birth year. Years before
// the epoch wrap around the cycles.
func ChineseZodiac(birthYear int) model.ChineseZodiac {
	offset := birthYear - zodiacEpoch
	return model.ChineseZodiac{
		Element: stems[mod(offset, len(stems))],
		Animal:  animals[mod(offset, len(animals))],
	}
}

// mod is mathematical modulo: the result is always in [0, n).
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// Insights computes every derived field for a birthdate and workbook year.
// A missing or malformed date yields empty insights.
func Insights(iso string, year int) model.DerivedInsights {
	d, ok := parseBirthdate(iso)
	if !ok {
		return model.DerivedInsights{}
	}
	return model.DerivedInsights{
		LifePath:       LifePath(iso),
		BirthdayNumber: BirthdayNumber(iso),
		PersonalYear:   PersonalYear(iso, year),
		SunSign:        sunSignFor(d.month, d.day),
		ChineseZodiac:  ChineseZodiac(d.year),
	}
}
