package viewmodel

import (
	"errors"
	apperrors "shiftboard/pkg/errors"
	"shiftboard/pkg/model"
	"testing"
)

func TestBoard_ConfirmedProposal(t *testing.T) {
	b := NewBoard("d1", nil)

	cell, err := b.Propose("2026-02-14", model.StatusVacation)
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if cell.State != StatePending || cell.Shown != model.StatusVacation {
		t.Fatalf("unexpected pending cell: %+v", cell)
	}

	cell, err = b.Resolve("2026-02-14", nil)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cell.State != StateConfirmed || cell.Confirmed != model.StatusVacation {
		t.Errorf("unexpected confirmed cell: %+v", cell)
	}
}

func TestBoard_RejectionReverts(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantReason string
	}{
		{"month locked", apperrors.MonthLocked("2026-02-01"), apperrors.CodeMonthLocked},
		{"store failure", apperrors.StoreFailure("write failed", errors.New("conn reset")), apperrors.CodeStoreFailure},
		{"transport error", errors.New("connection refused"), apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard("d1", []model.AvailabilityConstraint{
				{DoctorID: "d1", Date: "2026-02-14", Status: model.StatusBlocked},
			})

			if _, err := b.Propose("2026-02-14", model.StatusAvailable); err != nil {
				t.Fatalf("propose: %v", err)
			}
			cell, err := b.Resolve("2026-02-14", tt.err)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if cell.State != StateReverted {
				t.Errorf("expected reverted, got %s", cell.State)
			}
			if cell.Shown != model.StatusBlocked || cell.Confirmed != model.StatusBlocked {
				t.Errorf("expected blocked to be restored, got %+v", cell)
			}
			if cell.Reason != tt.wantReason {
				t.Errorf("expected reason %s, got %s", tt.wantReason, cell.Reason)
			}
		})
	}
}

func TestBoard_OnePendingPerDate(t *testing.T) {
	b := NewBoard("d1", nil)
	if _, err := b.Propose("2026-02-14", model.StatusVacation); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Propose("2026-02-14", model.StatusBlocked); !errors.Is(err, ErrPending) {
		t.Errorf("expected ErrPending, got %v", err)
	}
	if _, err := b.Resolve("2026-02-15", nil); !errors.Is(err, ErrNothingQueued) {
		t.Errorf("expected ErrNothingQueued, got %v", err)
	}
}

func TestBoard_ProposeCycle(t *testing.T) {
	b := NewBoard("d1", nil)
	want := []model.AvailabilityStatus{model.StatusVacation, model.StatusBlocked, model.StatusAvailable}

	for i, w := range want {
		cell, err := b.ProposeCycle("2026-03-05")
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if cell.Shown != w {
			t.Errorf("step %d: expected %q, got %q", i, w, cell.Shown)
		}
		if _, err := b.Resolve("2026-03-05", nil); err != nil {
			t.Fatalf("step %d resolve: %v", i, err)
		}
	}

	if len(b.Cells()) != 0 {
		t.Errorf("expected no visible cells after cycling back, got %+v", b.Cells())
	}
}

func TestBoard_InvalidDate(t *testing.T) {
	b := NewBoard("d1", nil)
	if _, err := b.Propose("2026-02-30", model.StatusVacation); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestBoard_IgnoresOtherDoctors(t *testing.T) {
	b := NewBoard("d1", []model.AvailabilityConstraint{
		{DoctorID: "d2", Date: "2026-02-14", Status: model.StatusVacation},
	})
	if cell := b.Cell("2026-02-14"); !cell.Shown.IsAvailable() {
		t.Errorf("expected d2's record to be ignored, got %+v", cell)
	}
}
