package model

import "time"

// MonthLock freezes availability edits for one calendar month. A month with
// no record is open.
type MonthLock struct {
	MonthStart string    `json:"month_start" bson:"_id"`
	IsLocked   bool      `json:"is_locked" bson:"is_locked"`
	UpdatedBy  string    `json:"updated_by,omitempty" bson:"updated_by"`
	UpdatedAt  time.Time `json:"updated_at,omitempty" bson:"updated_at"`
}

type LockStatus struct {
	MonthStart string `json:"month_start"`
	IsLocked   bool   `json:"is_locked"`
}

type LockUpdate struct {
	IsLocked *bool `json:"is_locked" validate:"required"`
}
