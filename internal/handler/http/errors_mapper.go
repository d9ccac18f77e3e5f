package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-health-keeper/internal/app"
	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/MKhiriev/go-health-keeper/internal/store"
)

// errorResponse pairs a status code with the body message the client maps
// back to a service error.
type errorResponse struct {
	status  int
	message string
}

// errorStatusList is ordered: the first matching target wins, so specific
// validation errors come before ErrInvalidDataProvided which may wrap them.
var errorStatusList = []struct {
	target error
	errorResponse
}{
	{service.ErrValidationNoSubjectID, errorResponse{http.StatusBadRequest, app.MsgNoSubjectIDProvided}},
	{service.ErrValidationUnknownKind, errorResponse{http.StatusBadRequest, app.MsgUnknownEntityKind}},
	{service.ErrValidationInvalidID, errorResponse{http.StatusBadRequest, app.MsgInvalidRecordID}},
	{service.ErrValidationNoRecordGiven, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},
	{service.ErrVersionIsNotSpecified, errorResponse{http.StatusBadRequest, app.MsgVersionIsNotSpecified}},
	{service.ErrInvalidDataProvided, errorResponse{http.StatusBadRequest, app.MsgInvalidDataProvided}},

	{service.ErrWrongPassword, errorResponse{http.StatusUnauthorized, app.MsgInvalidLoginPassword}},
	{store.ErrNoUserWasFound, errorResponse{http.StatusUnauthorized, app.MsgInvalidLoginPassword}},
	{service.ErrTokenIsExpiredOrInvalid, errorResponse{http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid}},
	{service.ErrSessionRevoked, errorResponse{http.StatusUnauthorized, app.MsgSessionRevoked}},

	{store.ErrLoginAlreadyExists, errorResponse{http.StatusConflict, app.MsgLoginAlreadyExists}},
	{store.ErrRecordAlreadyExists, errorResponse{http.StatusConflict, app.MsgRecordAlreadyExists}},
	{store.ErrRecordNotFound, errorResponse{http.StatusNotFound, app.MsgRecordNotFound}},
}

func responseFromError(err error) errorResponse {
	for _, e := range errorStatusList {
		if errors.Is(err, e.target) {
			return e.errorResponse
		}
	}
	return errorResponse{http.StatusInternalServerError, app.MsgInternalServerError}
}

func statusFromError(err error) int {
	return responseFromError(err).status
}

// writeError answers with the status and message registered for err.
func writeError(w http.ResponseWriter, err error) {
	resp := responseFromError(err)
	http.Error(w, resp.message, resp.status)
}
