package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	availabilityerrors "shiftboard/internal/availability/errors"
	"shiftboard/internal/availability/repository"
	"shiftboard/pkg/calendar"
	"shiftboard/pkg/config"
	apperrors "shiftboard/pkg/errors"
	"shiftboard/pkg/model"
	"time"
)

// Store is plain persistence for availability. It has no notion of actors or
// locks; writes that need authorization go through the Guard.
type Store interface {
	GetRange(ctx context.Context, doctorID, start, end string) ([]*model.AvailabilityConstraint, error)
	GetStatus(ctx context.Context, doctorID, date string) (model.AvailabilityStatus, error)
	SetStatus(ctx context.Context, doctorID, date string, status model.AvailabilityStatus) error
}

type store struct {
	repo repository.ConstraintRepository
	cfg  *config.Config
	now  func() time.Time
}

func NewStore(repo repository.ConstraintRepository, cfg *config.Config) Store {
	return &store{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

func invalidInput(sentinel error, message string) *apperrors.AppError {
	return apperrors.Wrap(sentinel, apperrors.CodeInvalidInput, message, http.StatusBadRequest)
}

func checkKey(doctorID, date string) error {
	if doctorID == "" {
		return apperrors.InvalidInput("Doctor ID cannot be empty")
	}
	if _, err := calendar.ParseDate(date); err != nil {
		return invalidInput(availabilityerrors.ErrInvalidDate, err.Error())
	}
	return nil
}

// GetRange reads the inclusive range in date order.
func (s *store) GetRange(ctx context.Context, doctorID, start, end string) ([]*model.AvailabilityConstraint, error) {
	if doctorID == "" {
		return nil, apperrors.InvalidInput("Doctor ID cannot be empty")
	}
	if err := calendar.ValidateRange(start, end); err != nil {
		return nil, invalidInput(availabilityerrors.ErrInvalidRange, err.Error())
	}

	constraints, err := s.repo.FindRange(ctx, doctorID, start, end)
	if err != nil {
		s.cfg.Log.Error("Failed to read availability",
			"doctor_id", doctorID,
			"start", start,
			"end", end,
			"error", err,
		)
		return nil, apperrors.StoreFailure("Failed to read availability", err)
	}
	return constraints, nil
}

// GetStatus returns StatusAvailable when no record exists.
func (s *store) GetStatus(ctx context.Context, doctorID, date string) (model.AvailabilityStatus, error) {
	if err := checkKey(doctorID, date); err != nil {
		return "", err
	}

	c, err := s.repo.Get(ctx, doctorID, date)
	if err != nil {
		if errors.Is(err, availabilityerrors.ErrConstraintNotFound) {
			return model.StatusAvailable, nil
		}
		s.cfg.Log.Error("Failed to read availability", "doctor_id", doctorID, "date", date, "error", err)
		return "", apperrors.StoreFailure("Failed to read availability", err)
	}
	return c.Status, nil
}

// SetStatus deletes the record for StatusAvailable and upserts otherwise, so
// a key never has more than one record.
func (s *store) SetStatus(ctx context.Context, doctorID, date string, status model.AvailabilityStatus) error {
	if err := checkKey(doctorID, date); err != nil {
		return err
	}
	if !status.Valid() {
		return invalidInput(availabilityerrors.ErrInvalidStatus, fmt.Sprintf("status must be vacation, blocked or null, got %q", status))
	}

	if status.IsAvailable() {
		if err := s.repo.Delete(ctx, doctorID, date); err != nil {
			s.cfg.Log.Error("Failed to clear availability", "doctor_id", doctorID, "date", date, "error", err)
			return apperrors.StoreFailure("Failed to update availability", err)
		}
		return nil
	}

	c := &model.AvailabilityConstraint{
		DoctorID:  doctorID,
		Date:      date,
		Status:    status,
		UpdatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.Upsert(ctx, c); err != nil {
		s.cfg.Log.Error("Failed to write availability",
			"doctor_id", doctorID,
			"date", date,
			"status", status,
			"error", err,
		)
		return apperrors.StoreFailure("Failed to update availability", err)
	}
	return nil
}
