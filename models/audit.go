// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AuditAction is the kind of access recorded in the audit trail.
type AuditAction string

const (
	AuditView   AuditAction = "VIEW"
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
	AuditExport AuditAction = "EXPORT"
)

// AuditActions lists all valid actions.
var AuditActions = []AuditAction{AuditView, AuditCreate, AuditUpdate, AuditDelete, AuditExport}

// Valid reports whether a is one of the known audit actions.
func (a AuditAction) Valid() bool {
	for _, known := range AuditActions {
		if a == known {
			return true
		}
	}
	return false
}

// Audit detail keys shared by the client and the server.
const (
	AuditDetailOutcome = "outcome"
	AuditDetailError   = "error"
	AuditDetailCount   = "count"

	// AuditDetailWarnings counts fields that could not be decrypted and
	// AuditDetailUnreadableFields names them. Values are never recorded.
	AuditDetailWarnings         = "warnings"
	AuditDetailUnreadableFields = "unreadable_fields"

	AuditOutcomeSuccess = "success"
	AuditOutcomeFailure = "failure"
)

// AuditEntry is an immutable record of one PHI access. Entries are only
// ever appended; the store exposes no update or delete path for them
// other than retention.
type AuditEntry struct {
	// ID is a UUID assigned when the entry is recorded.
	ID string `json:"id" validate:"required,uuid"`

	// Actor is the subject that performed the action.
	Actor string `json:"actor" validate:"required"`

	Action     AuditAction `json:"action" validate:"required,audit_action"`
	EntityKind EntityKind  `json:"entity_kind" validate:"required,entity_kind"`

	// RecordID is empty for actions that span several records, such as
	// listing a screen of records.
	RecordID string `json:"record_id,omitempty" validate:"omitempty,uuid"`

	// Timestamp is the moment the access happened, in UTC.
	Timestamp time.Time `json:"timestamp" validate:"required"`

	// Detail carries optional structured context. It never holds PHI values.
	Detail map[string]any `json:"detail,omitempty"`
}

// TableName returns the name of the database table associated with
// AuditEntry.
func (AuditEntry) TableName() string {
	return "audit_log"
}
