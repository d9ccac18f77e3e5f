// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-health-keeper/internal/logger"

// Storages groups the server repositories that share one connection.
type Storages struct {
	DB                *DB
	UserRepository    UserRepository
	RecordRepository  RecordRepository
	AuditRepository   AuditRepository
	SessionRepository SessionRepository
}

// NewStorages builds every repository on top of db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		DB:                db,
		UserRepository:    NewUserRepository(db, log),
		RecordRepository:  NewRecordRepository(db, log),
		AuditRepository:   NewAuditRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
	}
}
