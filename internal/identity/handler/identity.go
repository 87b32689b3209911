package handler

import (
	"net/http"
	"shiftboard/internal/identity/service"
	apperrors "shiftboard/pkg/errors"
	httputil "shiftboard/pkg/http"
	"shiftboard/pkg/logger"
	"shiftboard/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

type IdentityHandler struct {
	service service.IdentityService
	log     *logger.Logger
}

func NewIdentityHandler(service service.IdentityService, log *logger.Logger) *IdentityHandler {
	return &IdentityHandler{
		service: service,
		log:     log,
	}
}

func (h *IdentityHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		if err := httputil.WriteError(w, apperrors.Unauthorized("Authorization required")); err != nil {
			h.log.Error("failed to write error response", "handler", "Me", "operation", "WriteError", "error", err)
		}
		return
	}

	profile, err := h.service.Profile(r.Context(), email)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Me", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, profile); err != nil {
		h.log.Error("failed to write success response", "handler", "Me", "operation", "WriteSuccess", "error", err)
	}
}

func (h *IdentityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/me", h.Me)
}
