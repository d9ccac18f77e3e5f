package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/store"
	"github.com/MKhiriev/go-health-keeper/models"
)

type recordService struct {
	recordRepository store.RecordRepository

	now    func() time.Time
	logger *logger.Logger
}

func NewRecordService(recordRepository store.RecordRepository, logger *logger.Logger) RecordService {
	return &recordService{
		recordRepository: recordRepository,
		now:              time.Now,
		logger:           logger,
	}
}

func (r *recordService) CreateRecord(ctx context.Context, record models.StoredRecord) (models.StoredRecord, error) {
	now := r.now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	return r.recordRepository.CreateRecord(ctx, record)
}

func (r *recordService) GetRecord(ctx context.Context, ownerID, id string) (models.StoredRecord, error) {
	return r.recordRepository.GetRecord(ctx, ownerID, id)
}

func (r *recordService) ListRecords(ctx context.Context, ownerID string, kind models.EntityKind) ([]models.StoredRecord, error) {
	return r.recordRepository.ListRecords(ctx, ownerID, kind)
}

func (r *recordService) UpdateRecord(ctx context.Context, record models.StoredRecord) (models.StoredRecord, error) {
	record.UpdatedAt = r.now().UTC()
	return r.recordRepository.UpdateRecord(ctx, record)
}

func (r *recordService) DeleteRecord(ctx context.Context, ownerID, id string) error {
	return r.recordRepository.DeleteRecord(ctx, ownerID, id)
}
