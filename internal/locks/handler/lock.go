package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"shiftboard/internal/locks/service"
	"shiftboard/internal/locks/validator"
	apperrors "shiftboard/pkg/errors"
	httputil "shiftboard/pkg/http"
	"shiftboard/pkg/logger"
	"shiftboard/pkg/middleware"
	"shiftboard/pkg/model"
	"shiftboard/pkg/viewmodel"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
)

// ActorResolver turns the authenticated email into an explicit actor.
type ActorResolver interface {
	ResolveActor(ctx context.Context, email string) (*model.Actor, error)
}

type LockHandler struct {
	service   service.LockService
	identity  ActorResolver
	validator *validator.LockValidator
	log       *logger.Logger
	now       func() time.Time
}

func NewLockHandler(
	service service.LockService,
	identity ActorResolver,
	validator *validator.LockValidator,
	log *logger.Logger,
) *LockHandler {
	return &LockHandler{
		service:   service,
		identity:  identity,
		validator: validator,
		log:       log,
		now:       time.Now,
	}
}

func (h *LockHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

// GetYear lists explicit lock records of a year. With fill=true every month
// is returned and months without a record are open.
func (h *LockHandler) GetYear(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	year, err := httputil.ExtractYear(r, h.now())
	if err != nil {
		h.writeError(w, "GetYear", err)
		return
	}

	fill := false
	if s := r.URL.Query().Get("fill"); s != "" {
		fill, err = strconv.ParseBool(s)
		if err != nil {
			h.writeError(w, "GetYear", apperrors.InvalidInput("invalid fill parameter: "+s))
			return
		}
	}

	locks, err := h.service.GetLocksForYear(r.Context(), year)
	if err != nil {
		h.writeError(w, "GetYear", err)
		return
	}
	if fill {
		locks = viewmodel.FillYear(year, locks)
	}

	if err := httputil.WriteSuccess(w, locks); err != nil {
		h.log.Error("failed to write success response", "handler", "GetYear", "operation", "WriteSuccess", "error", err)
	}
}

func (h *LockHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	monthStart := ps.ByName("monthStart")
	if err := h.validator.ValidateMonth(monthStart); err != nil {
		h.writeError(w, "Get", apperrors.InvalidInput("month must be YYYY-MM or YYYY-MM-DD"))
		return
	}

	status, err := h.service.GetLockStatus(r.Context(), monthStart)
	if err != nil {
		h.writeError(w, "Get", err)
		return
	}

	if err := httputil.WriteSuccess(w, status); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *LockHandler) Put(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		h.writeError(w, "Put", apperrors.Unauthorized("Authorization required"))
		return
	}

	monthStart := ps.ByName("monthStart")
	if err := h.validator.ValidateMonth(monthStart); err != nil {
		h.writeError(w, "Put", apperrors.InvalidInput("month must be YYYY-MM or YYYY-MM-DD"))
		return
	}

	var update model.LockUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, "Put", apperrors.InvalidInput("Invalid request body"))
		return
	}
	if err := h.validator.ValidateUpdate(&update); err != nil {
		h.writeError(w, "Put", apperrors.Validation("Lock update validation failed", validator.Details(err)))
		return
	}

	actor, err := h.identity.ResolveActor(r.Context(), email)
	if err != nil {
		h.writeError(w, "Put", err)
		return
	}

	lock, err := h.service.SetLock(r.Context(), monthStart, *update.IsLocked, actor)
	if err != nil {
		h.writeError(w, "Put", err)
		return
	}

	if err := httputil.WriteSuccess(w, lock); err != nil {
		h.log.Error("failed to write success response", "handler", "Put", "operation", "WriteSuccess", "error", err)
	}
}

func (h *LockHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/locks", h.GetYear)
	router.GET("/api/v1/locks/:monthStart", h.Get)
	router.PUT("/api/v1/locks/:monthStart", h.Put)
}
