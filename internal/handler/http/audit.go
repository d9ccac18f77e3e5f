package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-health-keeper/internal/app"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/utils"
	"github.com/MKhiriev/go-health-keeper/models"
)

// appendAudit stores one audit entry. The actor is always the authenticated
// subject; whatever the body claims is replaced.
func (h *Handler) appendAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	subjectID, ok := utils.GetSubjectIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.appendAudit").Msg("no subject ID was given")
		http.Error(w, app.MsgNoSubjectIDProvided, http.StatusBadRequest)
		return
	}

	var entry models.AuditEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Err(err).Str("func", "*Handler.appendAudit").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	stored, err := h.services.AuditService.AppendAudit(ctx, subjectID, entry)
	if err != nil {
		log.Err(err).Str("func", "*Handler.appendAudit").Str("action", string(entry.Action)).Msg("error appending audit entry")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, stored, http.StatusCreated)
}
