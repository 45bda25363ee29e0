package dateutil

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// ParseDate parses a calendar date. Besides plain ISO dates it accepts RFC 3339
// timestamps, of which only the date part is kept.
func ParseDate(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 && (s[10] == 'T' || s[10] == ' ') {
		s = s[:10]
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// MustDate builds a date from its parts and panics on an invalid combination.
// Intended for constants and tests.
func MustDate(year int, month time.Month, day int) civil.Date {
	d := civil.Date{Year: year, Month: month, Day: day}
	if !d.IsValid() {
		panic(fmt.Sprintf("dateutil: invalid date %04d-%02d-%02d", year, month, day))
	}
	return d
}

// IsZero reports whether d is the zero date.
func IsZero(d civil.Date) bool { return d == civil.Date{} }

// DaysInclusive counts the calendar days in [start, end]. It is zero or negative
// when end precedes start.
func DaysInclusive(start, end civil.Date) int {
	return end.DaysSince(start) + 1
}

// AddDate adds years, months and days the way time.Time.AddDate does,
// normalizing overflowing days (e.g. Jan 31 + 1 month = Mar 3 or Mar 2).
func AddDate(d civil.Date, years, months, days int) civil.Date {
	return civil.DateOf(d.In(time.UTC).AddDate(years, months, days))
}

// AddYears adds a number of years to a date
func AddYears(d civil.Date, years int) civil.Date {
	return AddDate(d, years, 0, 0)
}

// Min returns the earlier of two dates
func Min(a, b civil.Date) civil.Date {
	if b.Before(a) {
		return b
	}
	return a
}

// Max returns the later of two dates
func Max(a, b civil.Date) civil.Date {
	if b.After(a) {
		return b
	}
	return a
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}
