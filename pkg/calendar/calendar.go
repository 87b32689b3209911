// Package calendar does date arithmetic on calendar fields (year, month,
// day) rather than on instants, so a timestamp near midnight in any zone is
// bucketed by the date it names.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidMonth = errors.New("month must be in YYYY-MM or YYYY-MM-DD format")
	ErrInvalidRange = errors.New("end date must not be before start date")
)

// ParseDate parses a YYYY-MM-DD string strictly. The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Format(DateLayout) != s {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// FormatDate renders the calendar date t names in its own location.
func FormatDate(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// MonthStart returns the YYYY-MM-01 key for the month t falls in, read from
// t's own calendar fields.
func MonthStart(t time.Time) string {
	y, m, _ := t.Date()
	return fmt.Sprintf("%04d-%02d-01", y, int(m))
}

// MonthStartOf returns the month key for a YYYY-MM-DD date.
func MonthStartOf(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return MonthStart(t), nil
}

// NormalizeMonth accepts YYYY-MM or any YYYY-MM-DD inside the month and
// returns the month key.
func NormalizeMonth(s string) (string, error) {
	if len(s) == len("2006-01") {
		t, err := time.Parse("2006-01", s)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidMonth, s)
		}
		return MonthStart(t), nil
	}
	key, err := MonthStartOf(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return key, nil
}

// MonthEnd returns the last date of the month starting at monthStart.
func MonthEnd(monthStart string) (string, error) {
	t, err := ParseDate(monthStart)
	if err != nil {
		return "", err
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return FormatDate(first.AddDate(0, 1, -1)), nil
}

// MonthRange returns the first and last date of the month containing t.
func MonthRange(t time.Time) (string, string) {
	start := MonthStart(t)
	end, _ := MonthEnd(start)
	return start, end
}

// YearBounds returns YYYY-01-01 and YYYY-12-31.
func YearBounds(year int) (string, string) {
	return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-12-31", year)
}

// MonthsOfYear returns the twelve month keys of year in order.
func MonthsOfYear(year int) []string {
	months := make([]string, 0, 12)
	for m := 1; m <= 12; m++ {
		months = append(months, fmt.Sprintf("%04d-%02d-01", year, m))
	}
	return months
}

// ValidateRange checks both bounds and their order.
func ValidateRange(start, end string) error {
	s, err := ParseDate(start)
	if err != nil {
		return err
	}
	e, err := ParseDate(end)
	if err != nil {
		return err
	}
	if e.Before(s) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, end)
	}
	return nil
}
