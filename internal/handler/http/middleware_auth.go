package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-health-keeper/internal/app"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/MKhiriev/go-health-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and stores the parsed token and its
// subject in the request context (see [utils.WithSession]). The child logger
// of the request gains a subject_id field.
//
// Requests are rejected with 401 when the header is missing or malformed,
// the token is expired, invalid or signed out. A failure to check the
// revocation list is a 500.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Int("status", statusFromError(err)).Msg("token rejected")
			writeError(w, err)
			return
		}
		if token.SubjectID == "" {
			log.Error().Msg("token has no subject")
			writeError(w, service.ErrTokenIsExpiredOrInvalid)
			return
		}

		l := logger.FromContext(ctx).WithSubject(token.SubjectID)
		ctx = utils.WithSession(l.WithContext(ctx), token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token from "Bearer <token>".
//
// It returns [ErrInvalidAuthorizationHeader] when the scheme or the token
// part is missing, and [ErrEmptyToken] when the token part is empty.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
