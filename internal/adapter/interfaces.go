// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the go-health-keeper store.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Everything that crosses this boundary is already encoded: sensitive fields
// are ciphertext envelopes produced by the codec before a record reaches the
// adapter.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-health-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the store.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account. On success the bearer token is stored via
	// SetToken and the new session is returned, including the key salt the
	// server issued for the account.
	Register(ctx context.Context, user models.User) (models.Session, error)

	// Login authenticates with login and password. On success the bearer
	// token is stored via SetToken.
	Login(ctx context.Context, user models.User) (models.Session, error)

	// CheckSession asks the store whether the current token is still
	// honoured.
	CheckSession(ctx context.Context) (models.SessionState, error)

	// SignOut revokes the current token at the store and forgets it locally,
	// even when the request fails.
	SignOut(ctx context.Context) error

	CreateRecord(ctx context.Context, record models.StoredRecord) (models.StoredRecord, error)
	GetRecord(ctx context.Context, id string) (models.StoredRecord, error)
	// ListRecords returns the caller's records of kind; an empty kind lists
	// every kind.
	ListRecords(ctx context.Context, kind models.EntityKind) ([]models.StoredRecord, error)
	UpdateRecord(ctx context.Context, record models.StoredRecord) (models.StoredRecord, error)
	DeleteRecord(ctx context.Context, id string) error

	// Append posts one audit entry to the store's append-only log. It
	// satisfies audit.Writer.
	Append(ctx context.Context, entry models.AuditEntry) error
}
