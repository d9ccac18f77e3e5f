// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// StoredRecord is the persisted form of a health record. Fields holds the
// record after encoding: sensitive values are ciphertext envelopes and the
// store never interprets them.
type StoredRecord struct {
	// ID is the client-issued UUID of the record.
	ID string `json:"id" validate:"required,uuid"`

	// OwnerID is the subject that owns the record. Set by the server from
	// the authenticated session, never trusted from the request body.
	OwnerID string `json:"owner_id,omitempty"`

	// Kind is the entity kind of the record.
	Kind EntityKind `json:"kind" validate:"required,entity_kind"`

	// Fields is the encoded record payload.
	Fields Record `json:"fields" validate:"required"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table associated with
// StoredRecord.
func (StoredRecord) TableName() string {
	return "health_records"
}
