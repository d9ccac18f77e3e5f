// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/models"
)

// recordRepository is the SQL-backed implementation of [RecordRepository].
// Field maps are stored as JSON text; the repository never looks inside
// them, so sensitive values arrive and leave as ciphertext envelopes.
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by db.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.StoredRecord, error) {
	var (
		record models.StoredRecord
		kind   string
		fields string
	)

	if err := row.Scan(&record.ID, &record.OwnerID, &kind, &fields, &record.CreatedAt, &record.UpdatedAt); err != nil {
		return models.StoredRecord{}, err
	}

	decoded, err := unmarshalFields(fields)
	if err != nil {
		return models.StoredRecord{}, err
	}

	record.Kind = models.EntityKind(kind)
	record.Fields = decoded
	return record, nil
}

// CreateRecord inserts record. A duplicate id yields [ErrRecordAlreadyExists].
func (p *recordRepository) CreateRecord(ctx context.Context, record models.StoredRecord) (models.StoredRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateRecordQuery(p.builder(), record)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.CreateRecord").
			Str("record_id", record.ID).
			Msg("failed to create query")
		return models.StoredRecord{}, err
	}

	if _, err = p.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "recordRepository.CreateRecord").
			Str("record_id", record.ID).
			Str("kind", record.Kind.String()).
			Msg("failed to insert record")

		if isUniqueViolation(err) {
			return models.StoredRecord{}, ErrRecordAlreadyExists
		}
		return models.StoredRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return record, nil
}

// GetRecord returns the record id owned by ownerID, or [ErrRecordNotFound].
func (p *recordRepository) GetRecord(ctx context.Context, ownerID, id string) (models.StoredRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetRecordQuery(p.builder(), ownerID, id)
	if err != nil {
		log.Err(err).Str("func", "recordRepository.GetRecord").Msg("failed to create query")
		return models.StoredRecord{}, err
	}

	record, err := scanRecord(p.DB.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.StoredRecord{}, ErrRecordNotFound
	case errors.Is(err, ErrEncodingFields):
		log.Err(err).Str("func", "recordRepository.GetRecord").Str("record_id", id).Msg("stored fields are not valid JSON")
		return models.StoredRecord{}, err
	case err != nil:
		log.Err(err).Str("func", "recordRepository.GetRecord").Str("record_id", id).Msg("failed to scan record")
		return models.StoredRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

// ListRecords returns every record of ownerID, filtered by kind when kind is
// not empty.
func (p *recordRepository) ListRecords(ctx context.Context, ownerID string, kind models.EntityKind) ([]models.StoredRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRecordsQuery(p.builder(), ownerID, kind)
	if err != nil {
		log.Err(err).Str("func", "recordRepository.ListRecords").Msg("failed to create query")
		return nil, err
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListRecords").
			Str("kind", kind.String()).
			Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.StoredRecord, 0)
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.ListRecords").
				Int("iteration", len(records)).
				Msg("failed to scan record")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "recordRepository.ListRecords").Msg("rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// UpdateRecord replaces the fields of an owned record of the same kind.
// Zero affected rows yields [ErrRecordNotFound].
func (p *recordRepository) UpdateRecord(ctx context.Context, record models.StoredRecord) (models.StoredRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateRecordQuery(p.builder(), record)
	if err != nil {
		log.Err(err).Str("func", "recordRepository.UpdateRecord").Msg("failed to create query")
		return models.StoredRecord{}, err
	}

	result, err := p.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.UpdateRecord").
			Str("record_id", record.ID).
			Msg("failed to update record")
		return models.StoredRecord{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return models.StoredRecord{}, ErrRecordNotFound
	}

	return p.GetRecord(ctx, record.OwnerID, record.ID)
}

// DeleteRecord removes an owned record. Zero affected rows yields
// [ErrRecordNotFound].
func (p *recordRepository) DeleteRecord(ctx context.Context, ownerID, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteRecordQuery(p.builder(), ownerID, id)
	if err != nil {
		log.Err(err).Str("func", "recordRepository.DeleteRecord").Msg("failed to create query")
		return err
	}

	result, err := p.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.DeleteRecord").
			Str("record_id", id).
			Msg("failed to delete record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}
