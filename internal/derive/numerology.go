package derive

import (
	"time"
)

const isoLayout = "2006-01-02"

// Master numbers are never reduced further.
var masterNumbers = map[int]bool{11: true, 22: true, 33: true}

// birthdate is a parsed "YYYY-MM-DD" value.
type birthdate struct {
	year, month, day int
}

// parseBirthdate accepts only a complete, real calendar date in ISO form.
func parseBirthdate(iso string) (birthdate, bool) {
	if iso == "" {
		return birthdate{}, false
	}
	t, err := time.Parse(isoLayout, iso)
	if err != nil {
		return birthdate{}, false
	}
	return birthdate{year: t.Year(), month: int(t.Month()), day: t.Day()}, true
}

// ValidDate reports whether iso is a well-formed "YYYY-MM-DD" calendar date.
func ValidDate(iso string) bool {
	_, ok := parseBirthdate(iso)
	return ok
}

// ReduceDigits sums decimal digits until the result is a single digit or a
// master number (11, 22, 33). Negative input is reduced by its magnitude.
func ReduceDigits(n int) int {
	if n < 0 {
		n = -n
	}
	for n > 9 && !masterNumbers[n] {
		n = digitSum(n)
	}
	return n
}

func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// LifePath sums every digit of the date (YYYYMMDD) and reduces the total.
func LifePath(iso string) *int {
	d, ok := parseBirthdate(iso)
	if !ok {
		return nil
	}
	sum := digitSum(d.year) + digitSum(d.month) + digitSum(d.day)
	return intPtr(ReduceDigits(sum))
}

// BirthdayNumber reduces the day of month.
func BirthdayNumber(iso string) *int {
	d, ok := parseBirthdate(iso)
	if !ok {
		return nil
	}
	return intPtr(ReduceDigits(d.day))
}

// PersonalYear reduces month, day and target year separately, then reduces
// their sum. The raw month+day+year total is never reduced directly.
func PersonalYear(iso string, targetYear int) *int {
	d, ok := parseBirthdate(iso)
	if !ok {
		return nil
	}
	sum := ReduceDigits(d.month) + ReduceDigits(d.day) + ReduceDigits(targetYear)
	return intPtr(ReduceDigits(sum))
}

func intPtr(v int) *int {
	return &v
}
