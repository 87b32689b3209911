package http

import (
	"net/http"
	"shiftboard/pkg/calendar"
	apperrors "shiftboard/pkg/errors"
	"strconv"
	"time"
)

// ExtractDateRange reads the inclusive start/end query parameters. When both
// are omitted the month containing now is used.
func ExtractDateRange(r *http.Request, now time.Time) (string, string, error) {
	query := r.URL.Query()
	start := query.Get("start")
	end := query.Get("end")

	if start == "" && end == "" {
		start, end = calendar.MonthRange(now)
		return start, end, nil
	}
	if start == "" || end == "" {
		return "", "", apperrors.InvalidInput("both start and end must be provided")
	}
	if err := calendar.ValidateRange(start, end); err != nil {
		return "", "", apperrors.InvalidInput(err.Error())
	}
	return start, end, nil
}

// ExtractYear reads the year query parameter, defaulting to now's year.
func ExtractYear(r *http.Request, now time.Time) (int, error) {
	s := r.URL.Query().Get("year")
	if s == "" {
		return now.Year(), nil
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < 1900 || year > 2100 {
		return 0, apperrors.InvalidInput("invalid year parameter: " + s)
	}
	return year, nil
}
