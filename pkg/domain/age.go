package domain

import (
	"fmt"
	"time"

	dErrors "registration/pkg/domain-errors"
)

// BirthDateLayout is the ISO-8601 calendar date layout accepted for birth dates.
const BirthDateLayout = "2006-01-02"

// Age bounds accepted at registration, inclusive.
const (
	MinAge   = 10
	MaxAge   = 120
	AdultAge = 18
)

// BirthDateProblem explains why a birth date was rejected.
type BirthDateProblem int

const (
	BirthDateOK BirthDateProblem = iota
	BirthDateEmpty
	BirthDateInvalid
	BirthDateTooYoung
	BirthDateTooOld
)

// BirthDate is a calendar date with no time-of-day or zone.
type BirthDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseBirthDate parses a strict YYYY-MM-DD string. Dates that do not exist
// on the calendar (2023-02-29, 2024-13-01) are rejected.
func ParseBirthDate(s string) (BirthDate, error) {
	t, err := time.Parse(BirthDateLayout, s)
	if err != nil {
		return BirthDate{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "birth date must be a YYYY-MM-DD calendar date")
	}
	return BirthDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// String renders the date back in YYYY-MM-DD form.
func (b BirthDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", b.Year, int(b.Month), b.Day)
}

// Parts returns the zero-padded day, month and year strings.
func (b BirthDate) Parts() (day, month, year string) {
	return fmt.Sprintf("%02d", b.Day), fmt.Sprintf("%02d", int(b.Month)), fmt.Sprintf("%04d", b.Year)
}

// After reports whether b falls on a later calendar day than today's date
// in today's location.
func (b BirthDate) After(today time.Time) bool {
	y, m, d := today.Date()
	if b.Year != y {
		return b.Year > y
	}
	if b.Month != m {
		return b.Month > m
	}
	return b.Day > d
}

// CalculateAge returns completed years between birth and today. The year
// difference is reduced by one when today's (month, day) precedes the
// birthday's, so a 29 February birthday completes on 1 March in common years.
func CalculateAge(birth BirthDate, today time.Time) int {
	y, m, d := today.Date()
	age := y - birth.Year
	if m < birth.Month || (m == birth.Month && d < birth.Day) {
		age--
	}
	return age
}

// IsMinor reports whether age is under AdultAge.
func IsMinor(age int) bool {
	return age < AdultAge
}

// ValidBirthDate reports whether s is a real calendar date, not after today,
// giving an age between MinAge and MaxAge inclusive.
func ValidBirthDate(s string, today time.Time) bool {
	return ClassifyBirthDate(s, today) == BirthDateOK
}

// ClassifyBirthDate returns the problem with s relative to today. Future
// dates yield a negative age and are reported as too young.
func ClassifyBirthDate(s string, today time.Time) BirthDateProblem {
	if s == "" {
		return BirthDateEmpty
	}
	birth, err := ParseBirthDate(s)
	if err != nil {
		return BirthDateInvalid
	}
	age := CalculateAge(birth, today)
	switch {
	case birth.After(today), age < MinAge:
		return BirthDateTooYoung
	case age > MaxAge:
		return BirthDateTooOld
	}
	return BirthDateOK
}
