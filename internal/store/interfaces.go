// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-health-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists account credentials and the per-user key salt.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, user models.User) (models.User, error)
}

// RecordRepository persists encoded health records. Every lookup is scoped by
// owner, so a record that belongs to someone else is reported as missing.
type RecordRepository interface {
	CreateRecord(ctx context.Context, record models.StoredRecord) (models.StoredRecord, error)
	GetRecord(ctx context.Context, ownerID, id string) (models.StoredRecord, error)
	ListRecords(ctx context.Context, ownerID string, kind models.EntityKind) ([]models.StoredRecord, error)
	UpdateRecord(ctx context.Context, record models.StoredRecord) (models.StoredRecord, error)
	DeleteRecord(ctx context.Context, ownerID, id string) error
}

// AuditRepository is append only. The retention sweep is the only way an
// entry ever leaves the table.
type AuditRepository interface {
	AppendAudit(ctx context.Context, entry models.AuditEntry) error
	DeleteAuditOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SessionRepository tracks revoked session ids until their tokens expire.
type SessionRepository interface {
	RevokeSession(ctx context.Context, sessionID, subjectID string, expiresAt time.Time) error
	IsSessionRevoked(ctx context.Context, sessionID string) (bool, error)
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
