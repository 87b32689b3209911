package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"shiftboard/internal/availability/service"
	"shiftboard/internal/availability/validator"
	apperrors "shiftboard/pkg/errors"
	httputil "shiftboard/pkg/http"
	"shiftboard/pkg/logger"
	"shiftboard/pkg/middleware"
	"shiftboard/pkg/model"
	"shiftboard/pkg/sanitizer"
	"time"

	"github.com/julienschmidt/httprouter"
)

type AvailabilityHandler struct {
	store     service.Store
	guard     service.Guard
	validator *validator.AvailabilityValidator
	log       *logger.Logger
	now       func() time.Time
}

func NewAvailabilityHandler(
	store service.Store,
	guard service.Guard,
	validator *validator.AvailabilityValidator,
	log *logger.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		store:     store,
		guard:     guard,
		validator: validator,
		log:       log,
		now:       time.Now,
	}
}

func (h *AvailabilityHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *AvailabilityHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

// GetRange lists the doctor's non-available dates. Dates absent from the
// result are available.
func (h *AvailabilityHandler) GetRange(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	doctorID := sanitizer.SanitizeID(ps.ByName("doctorId"))

	start, end, err := httputil.ExtractDateRange(r, h.now())
	if err != nil {
		h.writeError(w, "GetRange", err)
		return
	}

	constraints, err := h.store.GetRange(r.Context(), doctorID, start, end)
	if err != nil {
		h.writeError(w, "GetRange", err)
		return
	}
	if constraints == nil {
		constraints = []*model.AvailabilityConstraint{}
	}

	h.writeSuccess(w, "GetRange", constraints)
}

func (h *AvailabilityHandler) Put(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		h.writeError(w, "Put", apperrors.Unauthorized("Authorization required"))
		return
	}

	doctorID, date := sanitizer.SanitizeID(ps.ByName("doctorId")), ps.ByName("date")
	if err := h.validator.ValidateKey(doctorID, date); err != nil {
		h.writeError(w, "Put", apperrors.Validation("Invalid availability key", validator.Details(err)))
		return
	}

	var update model.AvailabilityUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, "Put", apperrors.InvalidInput("Invalid request body"))
		return
	}
	if err := h.validator.ValidateUpdate(&update); err != nil {
		h.writeError(w, "Put", apperrors.Validation("Availability update validation failed", validator.Details(err)))
		return
	}

	result, err := h.guard.RequestAvailabilityChange(r.Context(), email, doctorID, date, update.Target())
	if err != nil {
		h.writeError(w, "Put", err)
		return
	}

	h.writeSuccess(w, "Put", result)
}

func (h *AvailabilityHandler) Cycle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		h.writeError(w, "Cycle", apperrors.Unauthorized("Authorization required"))
		return
	}

	doctorID, date := sanitizer.SanitizeID(ps.ByName("doctorId")), ps.ByName("date")
	if err := h.validator.ValidateKey(doctorID, date); err != nil {
		h.writeError(w, "Cycle", apperrors.Validation("Invalid availability key", validator.Details(err)))
		return
	}

	result, err := h.guard.CycleAvailability(r.Context(), email, doctorID, date)
	if err != nil {
		h.writeError(w, "Cycle", err)
		return
	}

	h.writeSuccess(w, "Cycle", result)
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/doctors/:doctorId/availability", h.GetRange)
	router.PUT("/api/v1/doctors/:doctorId/availability/:date", h.Put)
	router.POST("/api/v1/doctors/:doctorId/availability/:date/cycle", h.Cycle)
}
