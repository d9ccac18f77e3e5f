package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-health-keeper/internal/utils"
	"github.com/MKhiriev/go-health-keeper/internal/validators"
	"github.com/MKhiriev/go-health-keeper/models"
)

// RecordValidationService rejects malformed requests before they reach the
// wrapped RecordService.
type RecordValidationService struct {
	inner     RecordService
	validator validators.Validator
}

func NewRecordValidationService(validator validators.Validator) RecordServiceWrapper {
	return &RecordValidationService{
		validator: validator,
	}
}

func (v *RecordValidationService) CreateRecord(ctx context.Context, record models.StoredRecord) (models.StoredRecord, error) {
	if err := v.validateRecord(ctx, record); err != nil {
		return models.StoredRecord{}, err
	}
	return v.inner.CreateRecord(ctx, record)
}

func (v *RecordValidationService) GetRecord(ctx context.Context, ownerID, id string) (models.StoredRecord, error) {
	if err := validateOwnerAndID(ownerID, id); err != nil {
		return models.StoredRecord{}, err
	}
	return v.inner.GetRecord(ctx, ownerID, id)
}

func (v *RecordValidationService) ListRecords(ctx context.Context, ownerID string, kind models.EntityKind) ([]models.StoredRecord, error) {
	if ownerID == "" {
		return nil, ErrValidationNoSubjectID
	}
	// empty kind lists every kind
	if kind != "" && !kind.Valid() {
		return nil, ErrValidationUnknownKind
	}
	return v.inner.ListRecords(ctx, ownerID, kind)
}

func (v *RecordValidationService) UpdateRecord(ctx context.Context, record models.StoredRecord) (models.StoredRecord, error) {
	if err := v.validateRecord(ctx, record); err != nil {
		return models.StoredRecord{}, err
	}
	return v.inner.UpdateRecord(ctx, record)
}

func (v *RecordValidationService) DeleteRecord(ctx context.Context, ownerID, id string) error {
	if err := validateOwnerAndID(ownerID, id); err != nil {
		return err
	}
	return v.inner.DeleteRecord(ctx, ownerID, id)
}

func (v *RecordValidationService) Wrap(wrapped RecordService) RecordService {
	v.inner = wrapped
	return v
}

func (v *RecordValidationService) validateRecord(ctx context.Context, record models.StoredRecord) error {
	if record.OwnerID == "" {
		return ErrValidationNoSubjectID
	}
	if !record.Kind.Valid() {
		return ErrValidationUnknownKind
	}
	if !utils.IsUUID(record.ID) {
		return ErrValidationInvalidID
	}
	if err := v.validator.Validate(ctx, record); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if id := record.Fields.ID(); id != "" && id != record.ID {
		return fmt.Errorf("%w: fields id %q", ErrInvalidDataProvided, id)
	}
	return nil
}

func validateOwnerAndID(ownerID, id string) error {
	if ownerID == "" {
		return ErrValidationNoSubjectID
	}
	if !utils.IsUUID(id) {
		return ErrValidationInvalidID
	}
	return nil
}
