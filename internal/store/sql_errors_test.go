// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresErrorClassifier_Classify(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: NonRetryable},
		{name: "plain error", err: errors.New("x"), want: NonRetryable},
		{name: "deadlock", err: &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, want: Retryable},
		{name: "wrapped connection failure", err: fmt.Errorf("wrap: %w", &pgconn.PgError{Code: pgerrcode.ConnectionFailure}), want: Retryable},
		{name: "unique violation", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, want: NonRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier_Classify(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(fmt.Errorf("wrap: %w", sqlite3.Error{Code: sqlite3.ErrLocked})))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("x")))
}

func Test_isUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.True(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.True(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}))
	assert.False(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}))
	assert.False(t, isUniqueViolation(errors.New("x")))
}

func TestDB_Classify(t *testing.T) {
	db := &DB{}
	assert.Equal(t, NonRetryable, db.Classify(&pgconn.PgError{Code: pgerrcode.DeadlockDetected}))

	db.errorClassificator = NewPostgresErrorClassifier()
	assert.Equal(t, Retryable, db.Classify(&pgconn.PgError{Code: pgerrcode.DeadlockDetected}))
}

func TestExecWithRetry_RecoversFromDeadlock(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewAuditRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectExec("INSERT INTO audit_log").WillReturnError(&pgconn.PgError{Code: pgerrcode.DeadlockDetected})
	mock.ExpectExec("INSERT INTO audit_log").WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AppendAudit(testContext(), models.AuditEntry{ID: "e", Timestamp: time.Now()})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecWithRetry_GivesUp(t *testing.T) {
	db, mock := newTestDB(t)
	wrapped := newDBFromSQL(db)

	for range retryAttempts {
		mock.ExpectExec("DELETE FROM audit_log").WillReturnError(&pgconn.PgError{Code: pgerrcode.ConnectionFailure})
	}

	_, err := wrapped.execWithRetry(testContext(), "test", "DELETE FROM audit_log")
	assert.Equal(t, Retryable, wrapped.Classify(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecWithRetry_NoRetryForPermanentErrors(t *testing.T) {
	db, mock := newTestDB(t)
	wrapped := newDBFromSQL(db)

	mock.ExpectExec("DELETE FROM audit_log").WillReturnError(&pgconn.PgError{Code: pgerrcode.UndefinedTable})

	_, err := wrapped.execWithRetry(testContext(), "test", "DELETE FROM audit_log")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecWithRetry_StopsOnCancel(t *testing.T) {
	db, mock := newTestDB(t)
	wrapped := newDBFromSQL(db)

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	mock.ExpectExec("DELETE FROM audit_log").WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})

	_, err := wrapped.execWithRetry(ctx, "test", "DELETE FROM audit_log")
	assert.ErrorIs(t, err, context.Canceled)
}
