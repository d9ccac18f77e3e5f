package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-health-keeper/internal/config"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/metrics"
	"github.com/MKhiriev/go-health-keeper/internal/store"
	"github.com/MKhiriev/go-health-keeper/internal/utils"
	"github.com/MKhiriev/go-health-keeper/internal/validators"
	"github.com/MKhiriev/go-health-keeper/models"
)

type auditService struct {
	auditRepository   store.AuditRepository
	sessionRepository store.SessionRepository
	validator         validators.Validator
	metrics           *metrics.Metrics

	retention time.Duration
	ids       *utils.UUIDGenerator
	now       func() time.Time

	logger *logger.Logger
}

func NewAuditService(
	auditRepository store.AuditRepository,
	sessionRepository store.SessionRepository,
	validator validators.Validator,
	m *metrics.Metrics,
	cfg config.Workers,
	logger *logger.Logger,
) AuditService {
	if m == nil {
		m = metrics.Nop()
	}
	return &auditService{
		auditRepository:   auditRepository,
		sessionRepository: sessionRepository,
		validator:         validator,
		metrics:           m,
		retention:         cfg.AuditRetention,
		ids:               utils.NewUUIDGenerator(),
		now:               time.Now,
		logger:            logger,
	}
}

// AppendAudit overwrites the actor with the authenticated subject and stamps
// the entry with the server clock; a client-chosen id is kept only when it is
// a UUID.
func (s *auditService) AppendAudit(ctx context.Context, actor string, entry models.AuditEntry) (models.AuditEntry, error) {
	log := logger.FromContext(ctx)

	if actor == "" {
		return models.AuditEntry{}, ErrValidationNoSubjectID
	}

	entry.Actor = actor
	entry.Timestamp = s.now().UTC()
	if !utils.IsUUID(entry.ID) {
		entry.ID = s.ids.Generate()
	}

	if err := s.validator.Validate(ctx, entry); err != nil {
		return models.AuditEntry{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.auditRepository.AppendAudit(ctx, entry); err != nil {
		log.Err(err).
			Str("func", "auditService.AppendAudit").
			Str("audit_id", entry.ID).
			Str("action", string(entry.Action)).
			Msg("audit append failed")
		s.metrics.IncAuditWriteFailures()
		return models.AuditEntry{}, err
	}

	s.metrics.IncAuditRecorded(string(entry.Action))
	return entry, nil
}

func (s *auditService) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	if s.retention <= 0 {
		return 0, fmt.Errorf("%w: audit retention must be positive", ErrInvalidDataProvided)
	}

	purged, err := s.auditRepository.DeleteAuditOlderThan(ctx, now.Add(-s.retention))
	if err != nil {
		return 0, fmt.Errorf("purge audit entries: %w", err)
	}
	s.metrics.AddRetentionPurged(purged)

	sessions, err := s.sessionRepository.DeleteExpiredSessions(ctx, now)
	if err != nil {
		// stale revocations are harmless; the audit purge already happened
		log.Err(err).Str("func", "auditService.PurgeExpired").Msg("failed to purge expired revocations")
	}

	log.Info().
		Int64("audit_purged", purged).
		Int64("revocations_purged", sessions).
		Msg("retention sweep finished")

	return purged, nil
}
