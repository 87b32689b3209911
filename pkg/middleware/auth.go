package middleware

import (
	"context"
	"errors"
	"net/http"
	apperrors "shiftboard/pkg/errors"
	httputil "shiftboard/pkg/http"
	"shiftboard/pkg/logger"
	"shiftboard/pkg/sanitizer"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const emailKey contextKey = "principal_email"

// Claims is what the identity provider puts in its tokens. Only a verified
// email is needed; role and doctor linkage are looked up in the store.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type AuthConfig struct {
	Secret string
	Issuer string
}

var errMissingEmail = errors.New("token has no email claim")

// Authenticate verifies the bearer token and stores the lower-cased email in
// the request context. Requests without a valid token never reach next.
func Authenticate(cfg AuthConfig, log *logger.Logger) func(http.Handler) http.Handler {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{
			jwt.SigningMethodHS256.Alg(),
			jwt.SigningMethodHS384.Alg(),
			jwt.SigningMethodHS512.Alg(),
		}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	parser := jwt.NewParser(opts...)
	keyFunc := func(*jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				_ = httputil.WriteError(w, apperrors.Unauthorized("Authorization required"))
				return
			}

			email, err := parseEmail(parser, keyFunc, tokenString)
			if err != nil {
				log.Warn("Rejected token",
					"request_id", RequestIDFromContext(r.Context()),
					"path", r.URL.Path,
					"error", err,
				)
				_ = httputil.WriteError(w, apperrors.Unauthorized("Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), email)))
		})
	}
}

func parseEmail(parser *jwt.Parser, keyFunc jwt.Keyfunc, tokenString string) (string, error) {
	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, keyFunc)
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}
	email := sanitizer.SanitizeEmail(claims.Email)
	if email == "" {
		return "", errMissingEmail
	}
	return email, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

// EmailFromContext returns the principal set by Authenticate.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok && email != ""
}
