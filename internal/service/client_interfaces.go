// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-health-keeper/internal/codec"
	"github.com/MKhiriev/go-health-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService authenticates against the store and answers for the
// validity of the resulting session. It satisfies session.Session, so the
// idle guard signs out through it.
type ClientAuthService interface {
	// Register creates an account and returns the authenticated session.
	Register(ctx context.Context, user models.User) (models.Session, error)

	// Login authenticates an existing account.
	Login(ctx context.Context, user models.User) (models.Session, error)

	// Valid reports whether the store still honours the current session.
	Valid(ctx context.Context) bool

	// SignOut terminates the current session at the store.
	SignOut(ctx context.Context) error
}

// ClientRecordService is the only path through which the client reads or
// writes health records. Each call encodes or decodes through the record
// codec and issues exactly one audit entry, whatever the outcome.
type ClientRecordService interface {
	// Create encrypts and stores record, returning its id. An id already in
	// the record is kept when it is a UUID.
	Create(ctx context.Context, kind models.EntityKind, record models.Record) (string, error)

	// Get fetches and decrypts one record. Fields that could not be
	// decrypted are nil in the result and listed in the warnings.
	Get(ctx context.Context, kind models.EntityKind, id string) (models.Record, codec.Warnings, error)

	// List fetches and decrypts every record of kind. The whole screen is
	// audited as one VIEW.
	List(ctx context.Context, kind models.EntityKind) ([]models.Record, codec.Warnings, error)

	Update(ctx context.Context, kind models.EntityKind, id string, record models.Record) error
	Delete(ctx context.Context, kind models.EntityKind, id string) error

	// Export returns the decrypted record as indented JSON.
	Export(ctx context.Context, kind models.EntityKind, id string) ([]byte, error)
}
