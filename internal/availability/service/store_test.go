package service

import (
	"context"
	"errors"
	"fmt"
	availabilityerrors "shiftboard/internal/availability/errors"
	"shiftboard/pkg/config"
	apperrors "shiftboard/pkg/errors"
	"shiftboard/pkg/logger"
	"shiftboard/pkg/model"
	"sort"
	"testing"
	"time"
)

type constraintKey struct {
	doctorID string
	date     string
}

// memConstraintRepository mirrors the unique (doctor_id, date) index.
type memConstraintRepository struct {
	records   map[constraintKey]model.AvailabilityConstraint
	writes    int
	readErr   error
	writeErr  error
	deleteErr error
}

func newMemConstraintRepository() *memConstraintRepository {
	return &memConstraintRepository{records: make(map[constraintKey]model.AvailabilityConstraint)}
}

func (m *memConstraintRepository) FindRange(ctx context.Context, doctorID, start, end string) ([]*model.AvailabilityConstraint, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	var out []*model.AvailabilityConstraint
	for k, c := range m.records {
		if k.doctorID == doctorID && k.date >= start && k.date <= end {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *memConstraintRepository) Get(ctx context.Context, doctorID, date string) (*model.AvailabilityConstraint, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	c, ok := m.records[constraintKey{doctorID, date}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", availabilityerrors.ErrConstraintNotFound, doctorID, date)
	}
	return &c, nil
}

func (m *memConstraintRepository) Upsert(ctx context.Context, c *model.AvailabilityConstraint) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.records[constraintKey{c.DoctorID, c.Date}] = *c
	return nil
}

func (m *memConstraintRepository) Delete(ctx context.Context, doctorID, date string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.writes++
	delete(m.records, constraintKey{doctorID, date})
	return nil
}

var fixedNow = time.Date(2026, 2, 10, 23, 59, 0, 0, time.FixedZone("IST", 2*60*60))

func newTestStore(repo *memConstraintRepository) *store {
	return &store{
		repo: repo,
		cfg:  &config.Config{Log: logger.Discard()},
		now:  func() time.Time { return fixedNow },
	}
}

func TestSetStatus_AvailableDeletes(t *testing.T) {
	repo := newMemConstraintRepository()
	s := newTestStore(repo)
	ctx := context.Background()

	if err := s.SetStatus(ctx, "d1", "2026-02-20", model.StatusVacation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SetStatus(ctx, "d1", "2026-02-20", model.StatusAvailable); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.GetRange(ctx, "d1", "2026-02-01", "2026-02-28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records after clearing, got %+v", got)
	}

	// clearing an absent record is a no-op
	if err := s.SetStatus(ctx, "d1", "2026-02-21", model.StatusAvailable); err != nil {
		t.Errorf("clearing absent record: %v", err)
	}
}

func TestSetStatus_UpsertKeepsOneRecord(t *testing.T) {
	repo := newMemConstraintRepository()
	s := newTestStore(repo)
	ctx := context.Background()

	for _, status := range []model.AvailabilityStatus{model.StatusVacation, model.StatusBlocked} {
		if err := s.SetStatus(ctx, "d1", "2026-03-05", status); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err := s.GetRange(ctx, "d1", "2026-03-05", "2026-03-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(got))
	}
	if got[0].Status != model.StatusBlocked {
		t.Errorf("expected latest status blocked, got %q", got[0].Status)
	}
	if !got[0].UpdatedAt.Equal(fixedNow) || got[0].UpdatedAt.Location() != time.UTC {
		t.Errorf("expected UTC timestamp %v, got %v", fixedNow.UTC(), got[0].UpdatedAt)
	}
}

func TestGetStatus(t *testing.T) {
	repo := newMemConstraintRepository()
	repo.records[constraintKey{"d1", "2026-02-14"}] = model.AvailabilityConstraint{DoctorID: "d1", Date: "2026-02-14", Status: model.StatusBlocked}
	s := newTestStore(repo)

	status, err := s.GetStatus(context.Background(), "d1", "2026-02-14")
	if err != nil || status != model.StatusBlocked {
		t.Errorf("GetStatus() = %q, %v; want blocked", status, err)
	}

	status, err = s.GetStatus(context.Background(), "d1", "2026-02-15")
	if err != nil || !status.IsAvailable() {
		t.Errorf("GetStatus() = %q, %v; want available", status, err)
	}
}

func TestStore_InvalidInput(t *testing.T) {
	s := newTestStore(newMemConstraintRepository())
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func() error
		sentinel error
	}{
		{
			name:     "bad date",
			call:     func() error { return s.SetStatus(ctx, "d1", "2026-02-30", model.StatusVacation) },
			sentinel: availabilityerrors.ErrInvalidDate,
		},
		{
			name:     "bad status",
			call:     func() error { return s.SetStatus(ctx, "d1", "2026-02-14", "sick") },
			sentinel: availabilityerrors.ErrInvalidStatus,
		},
		{
			name: "reversed range",
			call: func() error {
				_, err := s.GetRange(ctx, "d1", "2026-02-28", "2026-02-01")
				return err
			},
			sentinel: availabilityerrors.ErrInvalidRange,
		},
		{
			name: "empty doctor",
			call: func() error {
				_, err := s.GetStatus(ctx, "", "2026-02-14")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !apperrors.Is(err, apperrors.CodeInvalidInput) {
				t.Fatalf("expected INVALID_INPUT, got %v", err)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("expected %v in chain, got %v", tt.sentinel, err)
			}
		})
	}
}

func TestStore_StoreFailure(t *testing.T) {
	repo := newMemConstraintRepository()
	s := newTestStore(repo)
	ctx := context.Background()
	boom := errors.New("connection reset")

	repo.readErr = boom
	if _, err := s.GetRange(ctx, "d1", "2026-02-01", "2026-02-28"); !apperrors.Is(err, apperrors.CodeStoreFailure) {
		t.Errorf("GetRange: expected STORE_FAILURE, got %v", err)
	}
	if _, err := s.GetStatus(ctx, "d1", "2026-02-01"); !apperrors.Is(err, apperrors.CodeStoreFailure) {
		t.Errorf("GetStatus: expected STORE_FAILURE, got %v", err)
	}

	repo.readErr = nil
	repo.writeErr = boom
	if err := s.SetStatus(ctx, "d1", "2026-02-01", model.StatusVacation); !apperrors.Is(err, apperrors.CodeStoreFailure) {
		t.Errorf("Upsert: expected STORE_FAILURE, got %v", err)
	}

	repo.deleteErr = boom
	err := s.SetStatus(ctx, "d1", "2026-02-01", model.StatusAvailable)
	if !apperrors.Is(err, apperrors.CodeStoreFailure) || !errors.Is(err, boom) {
		t.Errorf("Delete: expected STORE_FAILURE wrapping cause, got %v", err)
	}
}
