package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-health-keeper/internal/app"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/utils"
	"github.com/MKhiriev/go-health-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	subjectID, ok := utils.GetSubjectIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.createRecord").Msg("no subject ID was given")
		http.Error(w, app.MsgNoSubjectIDProvided, http.StatusBadRequest)
		return
	}

	var record models.StoredRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		log.Err(err).Str("func", "*Handler.createRecord").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	record.OwnerID = subjectID

	created, err := h.services.RecordService.CreateRecord(ctx, record)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createRecord").Str("record_id", record.ID).Msg("error creating record")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	subjectID, ok := utils.GetSubjectIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.getRecord").Msg("no subject ID was given")
		http.Error(w, app.MsgNoSubjectIDProvided, http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	record, err := h.services.RecordService.GetRecord(ctx, subjectID, id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRecord").Str("record_id", id).Msg("error getting record")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	subjectID, ok := utils.GetSubjectIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.listRecords").Msg("no subject ID was given")
		http.Error(w, app.MsgNoSubjectIDProvided, http.StatusBadRequest)
		return
	}

	kind := models.EntityKind(r.URL.Query().Get("kind"))
	records, err := h.services.RecordService.ListRecords(ctx, subjectID, kind)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listRecords").Str("kind", string(kind)).Msg("error listing records")
		writeError(w, err)
		return
	}
	if records == nil {
		records = []models.StoredRecord{}
	}

	utils.WriteJSON(w, models.RecordListResponse{
		Records: records,
		Length:  len(records),
	}, http.StatusOK)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	subjectID, ok := utils.GetSubjectIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.updateRecord").Msg("no subject ID was given")
		http.Error(w, app.MsgNoSubjectIDProvided, http.StatusBadRequest)
		return
	}

	var record models.StoredRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		log.Err(err).Str("func", "*Handler.updateRecord").Msg("Invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	if record.ID != "" && record.ID != id {
		log.Error().Str("func", "*Handler.updateRecord").Str("record_id", id).Msg("body id differs from path id")
		http.Error(w, app.MsgInvalidRecordID, http.StatusBadRequest)
		return
	}
	record.ID = id
	record.OwnerID = subjectID

	updated, err := h.services.RecordService.UpdateRecord(ctx, record)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateRecord").Str("record_id", id).Msg("error updating record")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	subjectID, ok := utils.GetSubjectIDFromContext(ctx)
	if !ok {
		log.Error().Str("func", "*Handler.deleteRecord").Msg("no subject ID was given")
		http.Error(w, app.MsgNoSubjectIDProvided, http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.services.RecordService.DeleteRecord(ctx, subjectID, id); err != nil {
		log.Err(err).Str("func", "*Handler.deleteRecord").Str("record_id", id).Msg("error deleting record")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
