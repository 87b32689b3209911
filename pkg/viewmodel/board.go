// Package viewmodel holds presentation-side state for an interactive
// availability calendar. A Board shows a tentative status as soon as the
// user acts and reconciles it with the server's answer.
package viewmodel

import (
	"errors"
	"shiftboard/pkg/calendar"
	apperrors "shiftboard/pkg/errors"
	"shiftboard/pkg/model"
	"sort"
)

type CellState string

const (
	StateConfirmed CellState = "confirmed"
	StatePending   CellState = "pending"
	// StateReverted marks a cell whose last proposal was rejected; it shows
	// the last confirmed status again.
	StateReverted CellState = "rejected-revert"
)

var (
	ErrPending       = errors.New("a change for this date is already pending")
	ErrNothingQueued = errors.New("no pending change for this date")
)

type Cell struct {
	Date      string                   `json:"date"`
	Confirmed model.AvailabilityStatus `json:"confirmed"`
	Shown     model.AvailabilityStatus `json:"shown"`
	State     CellState                `json:"state"`
	// Reason is the error code of the rejection for a reverted cell.
	Reason string `json:"reason,omitempty"`
}

// Board is one doctor's calendar as a client sees it. It is not safe for
// concurrent use.
type Board struct {
	DoctorID string
	cells    map[string]*Cell
}

func NewBoard(doctorID string, constraints []model.AvailabilityConstraint) *Board {
	b := &Board{DoctorID: doctorID, cells: make(map[string]*Cell)}
	for _, c := range constraints {
		if c.DoctorID != "" && c.DoctorID != doctorID {
			continue
		}
		b.cells[c.Date] = &Cell{Date: c.Date, Confirmed: c.Status, Shown: c.Status, State: StateConfirmed}
	}
	return b
}

func (b *Board) cell(date string) *Cell {
	c, ok := b.cells[date]
	if !ok {
		c = &Cell{Date: date, State: StateConfirmed}
		b.cells[date] = c
	}
	return c
}

// Cell returns a copy of the cell for date. Dates never touched are
// confirmed available.
func (b *Board) Cell(date string) Cell {
	if c, ok := b.cells[date]; ok {
		return *c
	}
	return Cell{Date: date, State: StateConfirmed}
}

// Propose shows status tentatively. Only one change per date may be in
// flight.
func (b *Board) Propose(date string, status model.AvailabilityStatus) (Cell, error) {
	if _, err := calendar.ParseDate(date); err != nil {
		return Cell{}, err
	}
	c := b.cell(date)
	if c.State == StatePending {
		return *c, ErrPending
	}
	c.Shown = status
	c.State = StatePending
	c.Reason = ""
	return *c, nil
}

// ProposeCycle proposes the next status in the toggle order, starting from
// what the cell currently shows.
func (b *Board) ProposeCycle(date string) (Cell, error) {
	return b.Propose(date, calendar.NextStatus(b.Cell(date).Shown))
}

// Resolve settles the pending change for date. A nil err confirms it; any
// error, rejection or store failure alike, reverts the cell to the last
// confirmed status before Resolve returns.
func (b *Board) Resolve(date string, err error) (Cell, error) {
	c, ok := b.cells[date]
	if !ok || c.State != StatePending {
		return b.Cell(date), ErrNothingQueued
	}
	if err == nil {
		c.Confirmed = c.Shown
		c.State = StateConfirmed
		c.Reason = ""
		return *c, nil
	}
	c.Shown = c.Confirmed
	c.State = StateReverted
	c.Reason = apperrors.AsAppError(err).Code
	return *c, nil
}

// Cells lists every cell with a non-available status or a pending or
// reverted state, ordered by date.
func (b *Board) Cells() []Cell {
	out := make([]Cell, 0, len(b.cells))
	for _, c := range b.cells {
		if c.State == StateConfirmed && c.Shown.IsAvailable() {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
