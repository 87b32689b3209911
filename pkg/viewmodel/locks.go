package viewmodel

import (
	"shiftboard/pkg/calendar"
	"shiftboard/pkg/model"
)

// FillYear returns all twelve months of year in order. Months without an
// explicit record are open.
func FillYear(year int, locks []model.LockStatus) []model.LockStatus {
	explicit := make(map[string]bool, len(locks))
	for _, l := range locks {
		explicit[l.MonthStart] = l.IsLocked
	}

	months := calendar.MonthsOfYear(year)
	out := make([]model.LockStatus, 0, len(months))
	for _, m := range months {
		out = append(out, model.LockStatus{MonthStart: m, IsLocked: explicit[m]})
	}
	return out
}
