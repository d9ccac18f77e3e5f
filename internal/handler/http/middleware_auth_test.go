package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-health-keeper/internal/app"
	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/MKhiriev/go-health-keeper/internal/utils"
	"github.com/MKhiriev/go-health-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi", nil},
		{"lowercase scheme", "bearer abc", "abc", nil},
		{"no token part", "Bearer", "", ErrInvalidAuthorizationHeader},
		{"other scheme", "Basic dXNlcjpwYXNz", "", ErrInvalidAuthorizationHeader},
		{"empty token", "Bearer ", "", ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		parse      func(m serviceMocks)
		wantStatus int
		wantBody   string
		wantNext   bool
	}{
		{
			name:       "missing header",
			parse:      func(serviceMocks) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   app.MsgTokenIsExpiredOrInvalid,
		},
		{
			name:       "malformed header",
			header:     "Token abc",
			parse:      func(serviceMocks) {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   app.MsgTokenIsExpiredOrInvalid,
		},
		{
			name:   "expired token",
			header: "Bearer expired",
			parse: func(m serviceMocks) {
				m.auth.EXPECT().ParseToken(gomock.Any(), "expired").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   app.MsgTokenIsExpiredOrInvalid,
		},
		{
			name:   "signed out session",
			header: "Bearer revoked",
			parse: func(m serviceMocks) {
				m.auth.EXPECT().ParseToken(gomock.Any(), "revoked").Return(models.Token{}, service.ErrSessionRevoked)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   app.MsgSessionRevoked,
		},
		{
			name:   "revocation lookup fails",
			header: "Bearer ok",
			parse: func(m serviceMocks) {
				m.auth.EXPECT().ParseToken(gomock.Any(), "ok").Return(models.Token{}, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   app.MsgInternalServerError,
		},
		{
			name:   "token without subject",
			header: "Bearer ok",
			parse: func(m serviceMocks) {
				m.auth.EXPECT().ParseToken(gomock.Any(), "ok").Return(models.Token{SessionID: "s"}, nil)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   app.MsgTokenIsExpiredOrInvalid,
		},
		{
			name:   "valid token",
			header: "Bearer signed-token",
			parse: func(m serviceMocks) {
				m.auth.EXPECT().ParseToken(gomock.Any(), "signed-token").Return(testToken(), nil)
			},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newMockedHandler(t)
			tt.parse(m)

			var nextCalled bool
			var gotSubject string
			var gotToken models.Token
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				gotSubject, _ = utils.GetSubjectIDFromContext(r.Context())
				gotToken, _ = utils.GetTokenFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.wantNext {
				assert.Equal(t, testSubject, gotSubject)
				assert.Equal(t, "session-1", gotToken.SessionID)
				return
			}
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rec.Body.String()))
		})
	}
}
