package handler

import (
	"net/http"
	"shiftboard/internal/shifts/service"
	httputil "shiftboard/pkg/http"
	"shiftboard/pkg/logger"
	"time"

	"github.com/julienschmidt/httprouter"
)

type ShiftHandler struct {
	service service.ShiftService
	log     *logger.Logger
	now     func() time.Time
}

func NewShiftHandler(service service.ShiftService, log *logger.Logger) *ShiftHandler {
	return &ShiftHandler{
		service: service,
		log:     log,
		now:     time.Now,
	}
}

func (h *ShiftHandler) GetShifts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start, end, err := httputil.ExtractDateRange(r, h.now())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetShifts", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	shifts, err := h.service.GetShifts(r.Context(), start, end)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetShifts", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, shifts); err != nil {
		h.log.Error("failed to write success response", "handler", "GetShifts", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ShiftHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/shifts", h.GetShifts)
}
