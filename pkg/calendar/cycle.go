package calendar

import "shiftboard/pkg/model"

// NextStatus advances the calendar toggle:
// available -> vacation -> blocked -> available.
func NextStatus(current model.AvailabilityStatus) model.AvailabilityStatus {
	switch current {
	case model.StatusAvailable:
		return model.StatusVacation
	case model.StatusVacation:
		return model.StatusBlocked
	default:
		return model.StatusAvailable
	}
}
