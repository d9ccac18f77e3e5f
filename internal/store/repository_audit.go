// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/models"
)

type auditRepository struct {
	*DB
	logger *logger.Logger
}

// NewAuditRepository constructs an [AuditRepository] backed by db.
func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	return &auditRepository{
		DB:     db,
		logger: logger,
	}
}

func (a *auditRepository) AppendAudit(ctx context.Context, entry models.AuditEntry) error {
	log := logger.FromContext(ctx)

	query, args, err := buildAppendAuditQuery(a.builder(), entry)
	if err != nil {
		log.Err(err).Str("func", "auditRepository.AppendAudit").Str("audit_id", entry.ID).Msg("failed to create query")
		return err
	}

	result, err := a.execWithRetry(ctx, "auditRepository.AppendAudit", query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "auditRepository.AppendAudit").
			Str("audit_id", entry.ID).
			Str("action", string(entry.Action)).
			Msg("failed to insert audit entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrAuditNotSaved
	}

	return nil
}

func (a *auditRepository) DeleteAuditOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteAuditOlderThanQuery(a.builder(), cutoff)
	if err != nil {
		log.Err(err).Str("func", "auditRepository.DeleteAuditOlderThan").Msg("failed to create query")
		return 0, err
	}

	result, err := a.execWithRetry(ctx, "auditRepository.DeleteAuditOlderThan", query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "auditRepository.DeleteAuditOlderThan").
			Time("cutoff", cutoff).
			Msg("failed to purge audit entries")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, _ := result.RowsAffected()
	return affected, nil
}
