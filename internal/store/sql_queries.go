// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-health-keeper/models"
)

var (
	userColumns   = []string{"user_id", "login", "password_hash", "key_salt", "created_at"}
	recordColumns = []string{"id", "owner_id", "kind", "fields", "created_at", "updated_at"}
	auditColumns  = []string{"id", "actor", "action", "entity_kind", "record_id", "occurred_at", "detail"}
)

const (
	usersTable           = "users"
	recordsTable         = "health_records"
	auditTable           = "audit_log"
	revokedSessionsTable = "revoked_sessions"
)

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	query, args, err := b.Insert(usersTable).
		Columns(userColumns...).
		Values(user.UserID, user.Login, user.PasswordHash, user.KeySalt, user.CreatedAt).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildFindUserByLoginQuery(b sq.StatementBuilderType, login string) (string, []any, error) {
	query, args, err := b.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"login": login}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildCreateRecordQuery(b sq.StatementBuilderType, record models.StoredRecord) (string, []any, error) {
	fields, err := marshalFields(record.Fields)
	if err != nil {
		return "", nil, err
	}

	query, args, err := b.Insert(recordsTable).
		Columns(recordColumns...).
		Values(record.ID, record.OwnerID, string(record.Kind), fields, record.CreatedAt, record.UpdatedAt).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildGetRecordQuery(b sq.StatementBuilderType, ownerID, id string) (string, []any, error) {
	query, args, err := b.Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildListRecordsQuery returns every record of ownerID, optionally narrowed
// to a single kind, oldest first.
func buildListRecordsQuery(b sq.StatementBuilderType, ownerID string, kind models.EntityKind) (string, []any, error) {
	q := b.Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"owner_id": ownerID})

	if kind != "" {
		q = q.Where(sq.Eq{"kind": string(kind)})
	}

	query, args, err := q.OrderBy("created_at ASC", "id ASC").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdateRecordQuery replaces the field set of one owned record. The kind
// is part of the filter so a record can never change kind.
func buildUpdateRecordQuery(b sq.StatementBuilderType, record models.StoredRecord) (string, []any, error) {
	fields, err := marshalFields(record.Fields)
	if err != nil {
		return "", nil, err
	}

	query, args, err := b.Update(recordsTable).
		Set("fields", fields).
		Set("updated_at", record.UpdatedAt).
		Where(sq.Eq{"id": record.ID, "owner_id": record.OwnerID, "kind": string(record.Kind)}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteRecordQuery(b sq.StatementBuilderType, ownerID, id string) (string, []any, error) {
	query, args, err := b.Delete(recordsTable).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildAppendAuditQuery(b sq.StatementBuilderType, entry models.AuditEntry) (string, []any, error) {
	var detail any
	if len(entry.Detail) > 0 {
		raw, err := json.Marshal(entry.Detail)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrEncodingFields, err)
		}
		detail = string(raw)
	}

	var recordID any
	if entry.RecordID != "" {
		recordID = entry.RecordID
	}

	query, args, err := b.Insert(auditTable).
		Columns(auditColumns...).
		Values(entry.ID, entry.Actor, string(entry.Action), string(entry.EntityKind), recordID, entry.Timestamp.UTC(), detail).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteAuditOlderThanQuery(b sq.StatementBuilderType, cutoff time.Time) (string, []any, error) {
	query, args, err := b.Delete(auditTable).
		Where(sq.Lt{"occurred_at": cutoff.UTC()}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildRevokeSessionQuery(b sq.StatementBuilderType, sessionID, subjectID string, expiresAt, revokedAt time.Time) (string, []any, error) {
	query, args, err := b.Insert(revokedSessionsTable).
		Columns("session_id", "subject_id", "expires_at", "revoked_at").
		Values(sessionID, subjectID, expiresAt.UTC(), revokedAt.UTC()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildIsSessionRevokedQuery(b sq.StatementBuilderType, sessionID string) (string, []any, error) {
	query, args, err := b.Select("COUNT(*)").
		From(revokedSessionsTable).
		Where(sq.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteExpiredSessionsQuery(b sq.StatementBuilderType, now time.Time) (string, []any, error) {
	query, args, err := b.Delete(revokedSessionsTable).
		Where(sq.Lt{"expires_at": now.UTC()}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func marshalFields(fields models.Record) (string, error) {
	if fields == nil {
		fields = models.Record{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingFields, err)
	}
	return string(raw), nil
}

func unmarshalFields(raw string) (models.Record, error) {
	fields := models.Record{}
	if raw == "" {
		return fields, nil
	}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingFields, err)
	}
	return fields, nil
}
