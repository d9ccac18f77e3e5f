package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-health-keeper/internal/config"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
)

// appInfoService answers the unauthenticated version probe clients use
// before signing in.
type appInfoService struct {
	version string
	logger  *logger.Logger
}

// NewAppInfoService serves cfg.Version with surrounding whitespace removed.
// A blank version is [ErrVersionIsNotSpecified].
func NewAppInfoService(cfg config.App, log *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	log.Debug().Str("func", "NewAppInfoService").Str("version", version).Msg("serving server version")

	return &appInfoService{
		version: version,
		logger:  log,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	logger.FromContext(ctx).Debug().Str("func", "appInfoService.GetAppVersion").Msg("version requested")
	return s.version
}
