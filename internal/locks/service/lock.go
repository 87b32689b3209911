package service

import (
	"context"
	"errors"
	"net/http"
	"shiftboard/internal/events"
	lockserrors "shiftboard/internal/locks/errors"
	"shiftboard/internal/locks/repository"
	"shiftboard/pkg/calendar"
	"shiftboard/pkg/config"
	apperrors "shiftboard/pkg/errors"
	"shiftboard/pkg/model"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LockService is the only mutator of month locks. A month without a record
// is open; the service never fabricates records for it.
type LockService interface {
	GetLockStatus(ctx context.Context, monthStart string) (*model.LockStatus, error)
	GetLocksForYear(ctx context.Context, year int) ([]model.LockStatus, error)
	SetLock(ctx context.Context, monthStart string, isLocked bool, actor *model.Actor) (*model.MonthLock, error)
}

type Metrics struct {
	toggles *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		toggles: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "shiftboard_month_lock_changes_total",
				Help: "Month lock writes by resulting state and outcome",
			},
			[]string{"is_locked", "outcome"},
		),
	}
}

func (m *Metrics) observe(isLocked bool, outcome string) {
	if m == nil {
		return
	}
	m.toggles.WithLabelValues(strconv.FormatBool(isLocked), outcome).Inc()
}

type lockService struct {
	repo      repository.LockRepository
	publisher events.Publisher
	metrics   *Metrics
	cfg       *config.Config
	now       func() time.Time
}

func NewLockService(
	repo repository.LockRepository,
	publisher events.Publisher,
	metrics *Metrics,
	cfg *config.Config,
) LockService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &lockService{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		cfg:       cfg,
		now:       time.Now,
	}
}

func normalizeMonth(monthStart string) (string, error) {
	key, err := calendar.NormalizeMonth(monthStart)
	if err != nil {
		return "", apperrors.Wrap(lockserrors.ErrInvalidMonth, apperrors.CodeInvalidInput, err.Error(), http.StatusBadRequest)
	}
	return key, nil
}

func (s *lockService) GetLockStatus(ctx context.Context, monthStart string) (*model.LockStatus, error) {
	key, err := normalizeMonth(monthStart)
	if err != nil {
		return nil, err
	}

	lock, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, lockserrors.ErrLockNotFound) {
			return &model.LockStatus{MonthStart: key, IsLocked: false}, nil
		}
		s.cfg.Log.Error("Failed to read month lock", "month_start", key, "error", err)
		return nil, apperrors.StoreFailure("Failed to read month lock", err)
	}

	return &model.LockStatus{MonthStart: key, IsLocked: lock.IsLocked}, nil
}

// GetLocksForYear returns only months with an explicit record, in month
// order.
func (s *lockService) GetLocksForYear(ctx context.Context, year int) ([]model.LockStatus, error) {
	from, to := calendar.YearBounds(year)

	locks, err := s.repo.FindRange(ctx, from, to)
	if err != nil {
		s.cfg.Log.Error("Failed to read year locks", "year", year, "error", err)
		return nil, apperrors.StoreFailure("Failed to read month locks", err)
	}

	out := make([]model.LockStatus, 0, len(locks))
	for _, l := range locks {
		out = append(out, model.LockStatus{MonthStart: l.MonthStart, IsLocked: l.IsLocked})
	}
	s.cfg.Log.Debug("Read year locks", "year", year, "explicit", len(out))
	return out, nil
}

func (s *lockService) SetLock(ctx context.Context, monthStart string, isLocked bool, actor *model.Actor) (*model.MonthLock, error) {
	if actor == nil {
		return nil, apperrors.Unauthorized("Authenticated user is required")
	}
	if !actor.IsAdmin() {
		s.cfg.Log.Warn("Non-admin attempted to change a month lock",
			"user_id", actor.UserID,
			"month_start", monthStart,
		)
		s.metrics.observe(isLocked, "forbidden")
		return nil, apperrors.Forbidden("Only admins can lock or unlock months")
	}

	key, err := normalizeMonth(monthStart)
	if err != nil {
		return nil, err
	}

	lock := &model.MonthLock{
		MonthStart: key,
		IsLocked:   isLocked,
		UpdatedBy:  actor.AuditID(),
		UpdatedAt:  s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.Upsert(ctx, lock); err != nil {
		s.cfg.Log.Error("Failed to write month lock", "month_start", key, "error", err)
		s.metrics.observe(isLocked, "store_failure")
		return nil, apperrors.StoreFailure("Failed to update month lock", err)
	}

	s.metrics.observe(isLocked, "applied")
	s.cfg.Log.Info("Month lock updated",
		"month_start", key,
		"is_locked", isLocked,
		"updated_by", lock.UpdatedBy,
	)

	if err := s.publisher.MonthLockChanged(ctx, events.MonthLockChanged{
		MonthStart: key,
		IsLocked:   isLocked,
		UpdatedBy:  lock.UpdatedBy,
		At:         lock.UpdatedAt,
	}); err != nil {
		s.cfg.Log.Warn("Failed to publish month lock change", "month_start", key, "error", err)
	}

	return lock, nil
}
