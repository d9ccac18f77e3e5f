// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells whether a failed statement may succeed if run
// again.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

const (
	retryAttempts = 3
	retryBackoff  = 50 * time.Millisecond
)

// PostgresErrorClassifier implements [ErrorClassificator] for pgx. Lost
// connections, serialization failures and deadlocks are retryable.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NonRetryable
	}

	switch pgErr.Code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.CannotConnectNow:
		return Retryable
	}
	return NonRetryable
}

// execWithRetry runs an idempotent statement, repeating it with doubling
// backoff while the backend reports a retryable failure.
func (db *DB) execWithRetry(ctx context.Context, op, query string, args ...any) (sql.Result, error) {
	backoff := retryBackoff

	for attempt := 1; ; attempt++ {
		result, err := db.DB.ExecContext(ctx, query, args...)
		if err == nil || attempt == retryAttempts || db.Classify(err) != Retryable {
			return result, err
		}

		logger.FromContext(ctx).Warn().
			Err(err).
			Str("func", op).
			Int("attempt", attempt).
			Msg("retryable database error")

		select {
		case <-ctx.Done():
			return nil, errors.Join(err, ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}
