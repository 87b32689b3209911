// Package events announces applied availability and lock changes so that
// cached views of the affected dates can be invalidated downstream.
package events

import (
	"context"
	"shiftboard/pkg/model"
	"time"
)

const (
	TypeAvailabilityChanged = "availability.changed"
	TypeMonthLockChanged    = "month_lock.changed"

	SchemaVersion = "1"
)

type AvailabilityChanged struct {
	DoctorID   string                   `json:"doctor_id"`
	Date       string                   `json:"date"`
	MonthStart string                   `json:"month_start"`
	Status     model.AvailabilityStatus `json:"status,omitempty"`
	Available  bool                     `json:"available"`
	ActorID    string                   `json:"actor_id"`
	ByAdmin    bool                     `json:"by_admin"`
	At         time.Time                `json:"at"`
}

type MonthLockChanged struct {
	MonthStart string    `json:"month_start"`
	IsLocked   bool      `json:"is_locked"`
	UpdatedBy  string    `json:"updated_by"`
	At         time.Time `json:"at"`
}

type Publisher interface {
	AvailabilityChanged(ctx context.Context, e AvailabilityChanged) error
	MonthLockChanged(ctx context.Context, e MonthLockChanged) error
	Close() error
}

type NoopPublisher struct{}

func (NoopPublisher) AvailabilityChanged(context.Context, AvailabilityChanged) error { return nil }
func (NoopPublisher) MonthLockChanged(context.Context, MonthLockChanged) error       { return nil }
func (NoopPublisher) Close() error                                                   { return nil }
