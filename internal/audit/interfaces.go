// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package audit

import (
	"context"

	"github.com/MKhiriev/go-health-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/audit_mock.go -package=mock

// Writer appends one entry to durable audit storage. Implementations must
// not offer any way to modify or remove entries once written.
type Writer interface {
	Append(ctx context.Context, entry models.AuditEntry) error
}

// Recorder is what the rest of the application depends on. Record never
// fails from the caller's point of view.
type Recorder interface {
	Record(ctx context.Context, actor string, action models.AuditAction, kind models.EntityKind, recordID string, detail map[string]any)
}
