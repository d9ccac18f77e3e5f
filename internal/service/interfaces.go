package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-health-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=RecordServiceWrapper

// AuthService registers accounts, verifies credentials and manages the
// lifecycle of session tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	SignOut(ctx context.Context, token models.Token) error
}

// RecordService stores encoded health records on behalf of their owner.
// Field values are opaque to it.
type RecordService interface {
	CreateRecord(ctx context.Context, record models.StoredRecord) (models.StoredRecord, error)
	GetRecord(ctx context.Context, ownerID, id string) (models.StoredRecord, error)
	ListRecords(ctx context.Context, ownerID string, kind models.EntityKind) ([]models.StoredRecord, error)
	UpdateRecord(ctx context.Context, record models.StoredRecord) (models.StoredRecord, error)
	DeleteRecord(ctx context.Context, ownerID, id string) error
}

// AuditService accepts audit entries and owns their retention.
type AuditService interface {
	// AppendAudit stores entry with the authenticated subject as actor and
	// the server clock as timestamp.
	AppendAudit(ctx context.Context, actor string, entry models.AuditEntry) (models.AuditEntry, error)

	// PurgeExpired removes audit entries older than the retention period and
	// revocations whose tokens have expired. It returns the number of audit
	// entries removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// RecordServiceWrapper defines middleware composition for RecordService.
// Implementations wrap an existing RecordService to add behavior such as
// validation.
type RecordServiceWrapper interface {
	Wrap(RecordService) RecordService
}
