package service

import (
	"context"
	"errors"
	shiftserrors "shiftboard/internal/shifts/errors"
	"shiftboard/pkg/config"
	apperrors "shiftboard/pkg/errors"
	"shiftboard/pkg/logger"
	"shiftboard/pkg/model"
	"testing"
)

type mockShiftRepository struct {
	findRangeFunc func(ctx context.Context, start, end string) ([]*model.ShiftView, error)
}

func (m *mockShiftRepository) FindRange(ctx context.Context, start, end string) ([]*model.ShiftView, error) {
	return m.findRangeFunc(ctx, start, end)
}

func strPtr(s string) *string { return &s }

func TestGetShifts(t *testing.T) {
	shifts := []*model.ShiftView{
		{
			Shift:  model.Shift{ID: "s1", Date: "2026-02-01", ShiftRole: model.ShiftRoleAttending, DoctorID: strPtr("d1")},
			Doctor: &model.ShiftDoctor{FullName: "Dr. Levi", MedicalRole: model.MedicalRoleAttending},
		},
		{
			Shift: model.Shift{ID: "s2", Date: "2026-02-01", ShiftRole: model.ShiftRoleJuniorResident},
		},
	}

	tests := []struct {
		name     string
		start    string
		end      string
		repoErr  error
		wantCode string
		wantLen  int
	}{
		{"full month", "2026-02-01", "2026-02-28", nil, "", 2},
		{"single day", "2026-02-01", "2026-02-01", nil, "", 2},
		{"reversed", "2026-02-28", "2026-02-01", nil, apperrors.CodeInvalidInput, 0},
		{"malformed", "2026-02", "2026-02-28", nil, apperrors.CodeInvalidInput, 0},
		{"store down", "2026-02-01", "2026-02-28", errors.New("socket closed"), apperrors.CodeStoreFailure, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := NewShiftService(&mockShiftRepository{
				findRangeFunc: func(ctx context.Context, start, end string) ([]*model.ShiftView, error) {
					called = true
					if start != tt.start || end != tt.end {
						t.Errorf("range = %s..%s", start, end)
					}
					return shifts, tt.repoErr
				},
			}, &config.Config{Log: logger.Discard()})

			got, err := svc.GetShifts(context.Background(), tt.start, tt.end)
			if tt.wantCode != "" {
				if !apperrors.Is(err, tt.wantCode) {
					t.Fatalf("expected %s, got %v", tt.wantCode, err)
				}
				if tt.wantCode == apperrors.CodeInvalidInput {
					if called {
						t.Error("repository called with invalid range")
					}
					if !errors.Is(err, shiftserrors.ErrInvalidRange) {
						t.Errorf("expected ErrInvalidRange in chain, got %v", err)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("expected %d shifts, got %d", tt.wantLen, len(got))
			}
			if got[1].Doctor != nil || got[1].DoctorID != nil {
				t.Errorf("unassigned shift gained a doctor: %+v", got[1])
			}
		})
	}
}
