package http

import (
	"encoding/json"
	"net/http"
	apperrors "shiftboard/pkg/errors"
)

type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data any `json:"data"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError renders err with the status of its AppError. Anything that is
// not an AppError becomes a generic 500 so driver messages never leak.
func WriteError(w http.ResponseWriter, err error) error {
	if !apperrors.IsAppError(err) {
		return WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
			Code:  apperrors.CodeInternal,
		})
	}

	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}
