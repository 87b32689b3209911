package model

import "time"

type AvailabilityStatus string

const (
	// StatusAvailable is the implicit default. It is never stored: setting it
	// removes the constraint record.
	StatusAvailable AvailabilityStatus = ""
	StatusVacation  AvailabilityStatus = "vacation"
	StatusBlocked   AvailabilityStatus = "blocked"
)

func (s AvailabilityStatus) IsAvailable() bool {
	return s == StatusAvailable
}

func (s AvailabilityStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusVacation, StatusBlocked:
		return true
	}
	return false
}

// AvailabilityConstraint is a doctor's non-default status for one calendar
// date. At most one exists per (DoctorID, Date).
type AvailabilityConstraint struct {
	DoctorID  string             `json:"doctor_id" bson:"doctor_id"`
	Date      string             `json:"date" bson:"date"`
	Status    AvailabilityStatus `json:"status" bson:"status"`
	UpdatedAt time.Time          `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// AvailabilityUpdate is the request body for a status change. A null or
// missing status means available.
type AvailabilityUpdate struct {
	Status *AvailabilityStatus `json:"status" validate:"omitempty,oneof=vacation blocked"`
}

func (u *AvailabilityUpdate) Target() AvailabilityStatus {
	if u == nil || u.Status == nil {
		return StatusAvailable
	}
	return *u.Status
}

// AvailabilityResult is returned after a change was applied.
type AvailabilityResult struct {
	DoctorID   string             `json:"doctor_id"`
	Date       string             `json:"date"`
	Status     AvailabilityStatus `json:"status,omitempty"`
	MonthStart string             `json:"month_start"`
	Available  bool               `json:"available"`
}
