// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-health-keeper/internal/logger"
)

type sessionRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSessionRepository constructs a [SessionRepository] backed by db.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

// RevokeSession records sessionID as signed out. Revoking an already revoked
// session is not an error.
func (s *sessionRepository) RevokeSession(ctx context.Context, sessionID, subjectID string, expiresAt time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := buildRevokeSessionQuery(s.builder(), sessionID, subjectID, expiresAt, s.now())
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.RevokeSession").Msg("failed to create query")
		return err
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		log.Err(err).
			Str("func", "sessionRepository.RevokeSession").
			Str("session_id", sessionID).
			Msg("failed to revoke session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sessionRepository) IsSessionRevoked(ctx context.Context, sessionID string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildIsSessionRevokedQuery(s.builder(), sessionID)
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.IsSessionRevoked").Msg("failed to create query")
		return false, err
	}

	var count int
	if err = s.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "sessionRepository.IsSessionRevoked").
			Str("session_id", sessionID).
			Msg("failed to check session")
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count > 0, nil
}

func (s *sessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteExpiredSessionsQuery(s.builder(), now)
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.DeleteExpiredSessions").Msg("failed to create query")
		return 0, err
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.DeleteExpiredSessions").Msg("failed to purge revoked sessions")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, _ := result.RowsAffected()
	return affected, nil
}
