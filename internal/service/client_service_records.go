package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-health-keeper/internal/adapter"
	"github.com/MKhiriev/go-health-keeper/internal/audit"
	"github.com/MKhiriev/go-health-keeper/internal/codec"
	"github.com/MKhiriev/go-health-keeper/internal/crypto"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/store"
	"github.com/MKhiriev/go-health-keeper/internal/utils"
	"github.com/MKhiriev/go-health-keeper/models"
)

// Audit detail error classes. Raw error text is never put in an audit entry
// because codec errors may quote the offending value.
const (
	auditErrNotFound        = "not_found"
	auditErrUnauthenticated = "unauthenticated"
	auditErrInvalidInput    = "invalid_input"
	auditErrConfiguration   = "configuration"
	auditErrMismatch        = "mismatch"
	auditErrOther           = "error"
)

// clientRecordService is bound to one authenticated session.
type clientRecordService struct {
	adapter   adapter.ServerAdapter
	codec     codec.RecordCodec
	recorder  audit.Recorder
	subjectID string

	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

// NewClientRecordService builds the record service for the subject of sess.
func NewClientRecordService(
	sess models.Session,
	serverAdapter adapter.ServerAdapter,
	recordCodec codec.RecordCodec,
	recorder audit.Recorder,
	logger *logger.Logger,
) ClientRecordService {
	return &clientRecordService{
		adapter:   serverAdapter,
		codec:     recordCodec,
		recorder:  recorder,
		subjectID: sess.SubjectID,
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
	}
}

func (s *clientRecordService) Create(ctx context.Context, kind models.EntityKind, record models.Record) (_ string, err error) {
	id := record.ID()
	if !utils.IsUUID(id) {
		id = s.ids.Generate()
	}
	defer func() { s.audit(ctx, models.AuditCreate, kind, id, err, nil) }()

	if err = checkKind(kind); err != nil {
		return "", err
	}

	plain := record.Clone()
	if plain == nil {
		plain = models.Record{}
	}
	plain[models.FieldID] = id

	encoded, err := s.codec.Encode(ctx, kind, plain, s.subjectID)
	if err != nil {
		return "", err
	}

	if _, err = s.adapter.CreateRecord(ctx, models.StoredRecord{ID: id, Kind: kind, Fields: encoded}); err != nil {
		return "", mapAdapterError(err)
	}

	return id, nil
}

func (s *clientRecordService) Get(ctx context.Context, kind models.EntityKind, id string) (record models.Record, warnings codec.Warnings, err error) {
	defer func() { s.audit(ctx, models.AuditView, kind, id, err, warningsDetail(warnings)) }()
	return s.fetch(ctx, kind, id)
}

func (s *clientRecordService) List(ctx context.Context, kind models.EntityKind) (records []models.Record, warnings codec.Warnings, err error) {
	defer func() {
		detail := warningsDetail(warnings)
		if err == nil {
			if detail == nil {
				detail = map[string]any{}
			}
			detail[models.AuditDetailCount] = len(records)
		}
		s.audit(ctx, models.AuditView, kind, "", err, detail)
	}()

	if err = checkKind(kind); err != nil {
		return nil, nil, err
	}

	stored, err := s.adapter.ListRecords(ctx, kind)
	if err != nil {
		return nil, nil, mapAdapterError(err)
	}

	records = make([]models.Record, 0, len(stored))
	for _, rec := range stored {
		if rec.Kind != kind {
			s.logger.Warn().
				Str("func", "clientRecordService.List").
				Str("record_id", rec.ID).
				Str("kind", rec.Kind.String()).
				Msg("store returned a record of another kind, skipped")
			continue
		}

		decoded, ws, decErr := s.codec.Decode(ctx, kind, rec.Fields, s.subjectID)
		if decErr != nil {
			return nil, nil, decErr
		}
		warnings = append(warnings, ws...)
		records = append(records, decoded)
	}

	return records, warnings, nil
}

func (s *clientRecordService) Update(ctx context.Context, kind models.EntityKind, id string, record models.Record) (err error) {
	defer func() { s.audit(ctx, models.AuditUpdate, kind, id, err, nil) }()

	if err = checkKind(kind); err != nil {
		return err
	}
	if !utils.IsUUID(id) {
		return ErrValidationInvalidID
	}
	if recID := record.ID(); recID != "" && recID != id {
		return ErrRecordMismatch
	}

	plain := record.Clone()
	if plain == nil {
		plain = models.Record{}
	}
	plain[models.FieldID] = id

	encoded, err := s.codec.Encode(ctx, kind, plain, s.subjectID)
	if err != nil {
		return err
	}

	if _, err = s.adapter.UpdateRecord(ctx, models.StoredRecord{ID: id, Kind: kind, Fields: encoded}); err != nil {
		return mapAdapterError(err)
	}

	return nil
}

func (s *clientRecordService) Delete(ctx context.Context, kind models.EntityKind, id string) (err error) {
	defer func() { s.audit(ctx, models.AuditDelete, kind, id, err, nil) }()

	if err = checkKind(kind); err != nil {
		return err
	}
	if !utils.IsUUID(id) {
		return ErrValidationInvalidID
	}

	if err = s.adapter.DeleteRecord(ctx, id); err != nil {
		return mapAdapterError(err)
	}

	return nil
}

func (s *clientRecordService) Export(ctx context.Context, kind models.EntityKind, id string) (out []byte, err error) {
	var warnings codec.Warnings
	defer func() { s.audit(ctx, models.AuditExport, kind, id, err, warningsDetail(warnings)) }()

	record, warnings, err := s.fetch(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	out, err = json.MarshalIndent(struct {
		Kind   models.EntityKind `json:"kind"`
		Record models.Record     `json:"record"`
	}{Kind: kind, Record: record}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	return out, nil
}

// fetch loads and decodes one record without auditing; callers audit.
func (s *clientRecordService) fetch(ctx context.Context, kind models.EntityKind, id string) (models.Record, codec.Warnings, error) {
	if err := checkKind(kind); err != nil {
		return nil, nil, err
	}
	if !utils.IsUUID(id) {
		return nil, nil, ErrValidationInvalidID
	}

	stored, err := s.adapter.GetRecord(ctx, id)
	if err != nil {
		return nil, nil, mapAdapterError(err)
	}
	if stored.ID != id || stored.Kind != kind {
		return nil, nil, ErrRecordMismatch
	}

	return s.codec.Decode(ctx, kind, stored.Fields, s.subjectID)
}

func (s *clientRecordService) audit(ctx context.Context, action models.AuditAction, kind models.EntityKind, id string, err error, detail map[string]any) {
	if detail == nil {
		detail = make(map[string]any, 2)
	}
	if err != nil {
		detail[models.AuditDetailOutcome] = models.AuditOutcomeFailure
		detail[models.AuditDetailError] = auditErrorClass(err)
	} else {
		detail[models.AuditDetailOutcome] = models.AuditOutcomeSuccess
	}

	// an id that is not a UUID cannot be stored; the entry keeps the kind
	if !utils.IsUUID(id) {
		id = ""
	}

	s.recorder.Record(ctx, s.subjectID, action, kind, id, detail)
}

func checkKind(kind models.EntityKind) error {
	if !kind.Valid() {
		return ErrValidationUnknownKind
	}
	return nil
}

func warningsDetail(ws codec.Warnings) map[string]any {
	if len(ws) == 0 {
		return nil
	}
	fields := slices.Compact(slices.Sorted(slices.Values(ws.Fields())))
	return map[string]any{
		models.AuditDetailWarnings:         len(ws),
		models.AuditDetailUnreadableFields: fields,
	}
}

func auditErrorClass(err error) string {
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		return auditErrNotFound
	case errors.Is(err, ErrNotAuthenticated),
		errors.Is(err, ErrTokenIsExpiredOrInvalid),
		errors.Is(err, ErrSessionRevoked):
		return auditErrUnauthenticated
	case errors.Is(err, crypto.ErrConfiguration):
		return auditErrConfiguration
	case errors.Is(err, ErrRecordMismatch):
		return auditErrMismatch
	case errors.Is(err, ErrValidationUnknownKind),
		errors.Is(err, ErrValidationInvalidID),
		errors.Is(err, ErrInvalidDataProvided),
		errors.Is(err, codec.ErrUnknownEntityKind),
		errors.Is(err, codec.ErrInvalidFieldValue):
		return auditErrInvalidInput
	default:
		return auditErrOther
	}
}
