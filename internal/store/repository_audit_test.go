// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/models"
)

func TestAuditRepository_AppendAudit(t *testing.T) {
	ts := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		name       string
		entry      models.AuditEntry
		wantRecord any
		wantDetail any
	}{
		{
			name: "with record and detail",
			entry: models.AuditEntry{
				ID: "e1", Actor: testOwner, Action: models.AuditView, EntityKind: models.KindTestResult,
				RecordID: testRecordID, Timestamp: ts,
				Detail: map[string]any{"outcome": "success"},
			},
			wantRecord: testRecordID,
			wantDetail: `{"outcome":"success"}`,
		},
		{
			name: "list view without record id",
			entry: models.AuditEntry{
				ID: "e2", Actor: testOwner, Action: models.AuditView, EntityKind: models.KindDailyLog,
				Timestamp: ts,
			},
			wantRecord: nil,
			wantDetail: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			repo := NewAuditRepository(newDBFromSQL(db), logger.Nop())

			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_log (id,actor,action,entity_kind,record_id,occurred_at,detail) VALUES ($1,$2,$3,$4,$5,$6,$7)")).
				WithArgs(tt.entry.ID, tt.entry.Actor, string(tt.entry.Action), string(tt.entry.EntityKind), tt.wantRecord, ts, tt.wantDetail).
				WillReturnResult(sqlmock.NewResult(0, 1))

			require.NoError(t, repo.AppendAudit(testContext(), tt.entry))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAuditRepository_AppendAudit_Errors(t *testing.T) {
	t.Run("driver error", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewAuditRepository(newDBFromSQL(db), logger.Nop())
		mock.ExpectExec("INSERT INTO audit_log").WillReturnError(errors.New("disk full"))

		err := repo.AppendAudit(testContext(), models.AuditEntry{ID: "e", Timestamp: time.Now()})
		require.ErrorIs(t, err, ErrExecutingStatement)
	})

	t.Run("no rows", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := NewAuditRepository(newDBFromSQL(db), logger.Nop())
		mock.ExpectExec("INSERT INTO audit_log").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.AppendAudit(testContext(), models.AuditEntry{ID: "e", Timestamp: time.Now()})
		require.ErrorIs(t, err, ErrAuditNotSaved)
	})
}

func TestAuditRepository_DeleteAuditOlderThan(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewAuditRepository(newDBFromSQL(db), logger.Nop())
	cutoff := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM audit_log WHERE occurred_at < $1")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 42))

	n, err := repo.DeleteAuditOlderThan(testContext(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}
