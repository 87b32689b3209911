package middleware

import (
	"net/http"
	"shiftboard/pkg/logger"
	"strings"
)

// ContentTypeValidation rejects bodied requests that are not JSON. A POST
// with no body at all is let through.
func ContentTypeValidation(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requiresContentType(r) {
				contentType := extractContentType(r.Header.Get("Content-Type"))

				if contentType != "application/json" {
					log.Warn("Invalid Content-Type header",
						"request_id", RequestIDFromContext(r.Context()),
						"content_type", contentType,
						"path", r.URL.Path,
						"method", r.Method,
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnsupportedMediaType)
					_, _ = w.Write([]byte(`{"error":"Content-Type must be application/json","code":"INVALID_INPUT"}`))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresContentType(r *http.Request) bool {
	switch r.Method {
	case http.MethodPut, http.MethodPatch:
		return true
	case http.MethodPost:
		return r.ContentLength != 0
	}
	return false
}

func extractContentType(header string) string {
	if header == "" {
		return ""
	}

	parts := strings.Split(header, ";")
	return strings.TrimSpace(parts[0])
}
