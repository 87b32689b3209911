package service

import (
	"context"
	"net/http"
	availabilityerrors "shiftboard/internal/availability/errors"
	"shiftboard/internal/events"
	"shiftboard/pkg/calendar"
	"shiftboard/pkg/config"
	apperrors "shiftboard/pkg/errors"
	"shiftboard/pkg/model"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ActorResolver interface {
	ResolveActor(ctx context.Context, email string) (*model.Actor, error)
}

type LockReader interface {
	GetLockStatus(ctx context.Context, monthStart string) (*model.LockStatus, error)
}

// Guard is the only write path into the Store. Authorization is role plus
// lock state: it does not check that the actor owns doctorID.
type Guard interface {
	RequestAvailabilityChange(ctx context.Context, actorEmail, doctorID, date string, status model.AvailabilityStatus) (*model.AvailabilityResult, error)
	CycleAvailability(ctx context.Context, actorEmail, doctorID, date string) (*model.AvailabilityResult, error)
}

const (
	OutcomeApplied      = "applied"
	OutcomeUnauthorized = "unauthorized"
	OutcomeMonthLocked  = "month_locked"
	OutcomeInvalid      = "invalid"
	OutcomeStoreFailure = "store_failure"
)

type GuardMetrics struct {
	changes *prometheus.CounterVec
}

func NewGuardMetrics(reg prometheus.Registerer) *GuardMetrics {
	return &GuardMetrics{
		changes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shiftboard_availability_changes_total",
				Help: "Availability change requests by outcome",
			},
			[]string{"outcome"},
		),
	}
}

func (m *GuardMetrics) observe(err error) {
	if m == nil {
		return
	}
	m.changes.WithLabelValues(outcomeOf(err)).Inc()
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeApplied
	case apperrors.Is(err, apperrors.CodeUnauthorized):
		return OutcomeUnauthorized
	case apperrors.Is(err, apperrors.CodeMonthLocked):
		return OutcomeMonthLocked
	case apperrors.Is(err, apperrors.CodeInvalidInput):
		return OutcomeInvalid
	default:
		return OutcomeStoreFailure
	}
}

type guard struct {
	identity  ActorResolver
	locks     LockReader
	store     Store
	publisher events.Publisher
	metrics   *GuardMetrics
	cfg       *config.Config
	now       func() time.Time
}

func NewGuard(
	identity ActorResolver,
	locks LockReader,
	store Store,
	publisher events.Publisher,
	metrics *GuardMetrics,
	cfg *config.Config,
) Guard {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &guard{
		identity:  identity,
		locks:     locks,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (g *guard) RequestAvailabilityChange(ctx context.Context, actorEmail, doctorID, date string, status model.AvailabilityStatus) (*model.AvailabilityResult, error) {
	result, err := g.change(ctx, actorEmail, doctorID, date, func(context.Context) (model.AvailabilityStatus, error) {
		return status, nil
	})
	g.metrics.observe(err)
	return result, err
}

// CycleAvailability moves the date one step along
// available -> vacation -> blocked -> available.
func (g *guard) CycleAvailability(ctx context.Context, actorEmail, doctorID, date string) (*model.AvailabilityResult, error) {
	result, err := g.change(ctx, actorEmail, doctorID, date, func(ctx context.Context) (model.AvailabilityStatus, error) {
		current, err := g.store.GetStatus(ctx, doctorID, date)
		if err != nil {
			return "", err
		}
		return calendar.NextStatus(current), nil
	})
	g.metrics.observe(err)
	return result, err
}

// change runs the checks in a fixed order, each one short-circuiting:
// actor, month key, lock state, then the write. target is only evaluated
// once the write is allowed.
func (g *guard) change(
	ctx context.Context,
	actorEmail, doctorID, date string,
	target func(context.Context) (model.AvailabilityStatus, error),
) (*model.AvailabilityResult, error) {
	actor, err := g.identity.ResolveActor(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	isAdmin := actor.IsAdmin()

	if doctorID == "" {
		return nil, apperrors.InvalidInput("Doctor ID cannot be empty")
	}
	monthStart, err := calendar.MonthStartOf(date)
	if err != nil {
		return nil, apperrors.Wrap(availabilityerrors.ErrInvalidDate, apperrors.CodeInvalidInput, err.Error(), http.StatusBadRequest)
	}

	lock, err := g.locks.GetLockStatus(ctx, monthStart)
	if err != nil {
		return nil, err
	}

	if lock.IsLocked && !isAdmin {
		g.cfg.Log.Warn("Availability change rejected: month locked",
			"user_id", actor.UserID,
			"doctor_id", doctorID,
			"date", date,
			"month_start", monthStart,
		)
		return nil, apperrors.MonthLocked(monthStart)
	}

	status, err := target(ctx)
	if err != nil {
		return nil, err
	}
	if err := g.store.SetStatus(ctx, doctorID, date, status); err != nil {
		return nil, err
	}

	g.cfg.Log.Info("Availability change applied",
		"user_id", actor.UserID,
		"doctor_id", doctorID,
		"date", date,
		"status", status,
		"month_locked", lock.IsLocked,
		"admin", isAdmin,
	)

	result := &model.AvailabilityResult{
		DoctorID:   doctorID,
		Date:       date,
		Status:     status,
		MonthStart: monthStart,
		Available:  status.IsAvailable(),
	}

	if err := g.publisher.AvailabilityChanged(ctx, events.AvailabilityChanged{
		DoctorID:   doctorID,
		Date:       date,
		MonthStart: monthStart,
		Status:     status,
		Available:  result.Available,
		ActorID:    actor.AuditID(),
		ByAdmin:    isAdmin,
		At:         g.now().UTC(),
	}); err != nil {
		g.cfg.Log.Warn("Failed to publish availability change", "doctor_id", doctorID, "date", date, "error", err)
	}

	return result, nil
}
