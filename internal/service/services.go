package service

import (
	"github.com/MKhiriev/go-health-keeper/internal/config"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/metrics"
	"github.com/MKhiriev/go-health-keeper/internal/store"
	"github.com/MKhiriev/go-health-keeper/internal/validators"
)

type Services struct {
	AuthService    AuthService
	RecordService  RecordService
	AuditService   AuditService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, m *metrics.Metrics, logger *logger.Logger) (*Services, error) {
	validator, err := validators.NewStructValidator()
	if err != nil {
		return nil, err
	}

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	records := NewRecordValidationService(validator).
		Wrap(NewRecordService(storages.RecordRepository, logger))

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, storages.SessionRepository, cfg.App, logger),
		RecordService:  records,
		AuditService:   NewAuditService(storages.AuditRepository, storages.SessionRepository, validator, m, cfg.Workers, logger),
		AppInfoService: appInfo,
	}, nil
}
