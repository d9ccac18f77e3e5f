package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-health-keeper/internal/app"
	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/MKhiriev/go-health-keeper/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestResponseFromError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
		{fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, service.ErrValidationInvalidID), http.StatusBadRequest, app.MsgInvalidRecordID},
		{service.ErrValidationNoSubjectID, http.StatusBadRequest, app.MsgNoSubjectIDProvided},
		{service.ErrWrongPassword, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
		{service.ErrSessionRevoked, http.StatusUnauthorized, app.MsgSessionRevoked},
		{fmt.Errorf("wrapped: %w", store.ErrLoginAlreadyExists), http.StatusConflict, app.MsgLoginAlreadyExists},
		{store.ErrRecordNotFound, http.StatusNotFound, app.MsgRecordNotFound},
		{store.ErrScanningRow, http.StatusInternalServerError, app.MsgInternalServerError},
		{errors.New("anything else"), http.StatusInternalServerError, app.MsgInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			resp := responseFromError(tt.err)

			assert.Equal(t, tt.wantStatus, resp.status)
			assert.Equal(t, tt.wantMsg, resp.message)
			assert.Equal(t, tt.wantStatus, statusFromError(tt.err))
		})
	}
}
