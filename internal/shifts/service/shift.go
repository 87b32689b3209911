package service

import (
	"context"
	"net/http"
	shiftserrors "shiftboard/internal/shifts/errors"
	"shiftboard/internal/shifts/repository"
	"shiftboard/pkg/calendar"
	"shiftboard/pkg/config"
	apperrors "shiftboard/pkg/errors"
	"shiftboard/pkg/model"
)

// ShiftService has no authorization gate: any authenticated caller may read
// the schedule.
type ShiftService interface {
	GetShifts(ctx context.Context, start, end string) ([]*model.ShiftView, error)
}

type shiftService struct {
	repo repository.ShiftRepository
	cfg  *config.Config
}

func NewShiftService(repo repository.ShiftRepository, cfg *config.Config) ShiftService {
	return &shiftService{
		repo: repo,
		cfg:  cfg,
	}
}

func (s *shiftService) GetShifts(ctx context.Context, start, end string) ([]*model.ShiftView, error) {
	if err := calendar.ValidateRange(start, end); err != nil {
		return nil, apperrors.Wrap(shiftserrors.ErrInvalidRange, apperrors.CodeInvalidInput, err.Error(), http.StatusBadRequest)
	}

	shifts, err := s.repo.FindRange(ctx, start, end)
	if err != nil {
		s.cfg.Log.Error("Failed to read shifts", "start", start, "end", end, "error", err)
		return nil, apperrors.StoreFailure("Failed to read shifts", err)
	}

	s.cfg.Log.Debug("Shifts read", "start", start, "end", end, "count", len(shifts))
	return shifts, nil
}
