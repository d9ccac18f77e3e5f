// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	defaultTokenDuration     = 12 * time.Hour
	defaultRequestTimeout    = 30 * time.Second
	defaultRetentionInterval = 24 * time.Hour
	// six years, the usual retention floor for health access logs
	defaultAuditRetention    = 6 * 365 * 24 * time.Hour
	defaultAuditWriteTimeout = 5 * time.Second

	defaultSessionTimeout       = 30 * time.Minute
	defaultSessionWarningWindow = 5 * time.Minute
	defaultSessionDebounce      = 60 * time.Second
)

func (cfg *StructuredConfig) applyServerDefaults() {
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Workers.RetentionInterval == 0 {
		cfg.Workers.RetentionInterval = defaultRetentionInterval
	}
	if cfg.Workers.AuditRetention == 0 {
		cfg.Workers.AuditRetention = defaultAuditRetention
	}
}
