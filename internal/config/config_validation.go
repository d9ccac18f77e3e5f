// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

const minKDFIterations = 100_000

// validate checks settings that are wrong regardless of role. Missing values
// are allowed here; role specific checks live in validateServer and
// ClientConfig.validate.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.KDFIterations != 0 && cfg.App.KDFIterations < minKDFIterations {
		return fmt.Errorf("%w: kdf iterations must be at least %d", ErrInvalidAppConfigs, minKDFIterations)
	}

	s := cfg.Session
	if s.Timeout < 0 || s.WarningWindow < 0 || s.Debounce < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidSessionConfigs)
	}
	if err := checkSessionTimings(s.Timeout, s.WarningWindow, s.Debounce); err != nil {
		return err
	}

	return nil
}

func (cfg *StructuredConfig) validateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}
	if cfg.Workers.RetentionInterval <= 0 || cfg.Workers.AuditRetention <= 0 {
		return ErrInvalidWorkerConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.KDFIterations != 0 && cfg.App.KDFIterations < minKDFIterations {
		return ErrInvalidAppConfigs
	}

	s := cfg.Session
	if err := checkSessionTimings(s.Timeout, s.WarningWindow, s.Debounce); err != nil {
		return err
	}

	return nil
}

// checkSessionTimings validates the idle guard timings with zero values
// replaced by the guard defaults. Activity arriving after the warning must
// always be outside the debounce interval.
func checkSessionTimings(timeout, window, debounce time.Duration) error {
	if timeout == 0 {
		timeout = defaultSessionTimeout
	}
	if window == 0 {
		window = defaultSessionWarningWindow
	}
	if debounce == 0 {
		debounce = defaultSessionDebounce
	}

	if window >= timeout {
		return fmt.Errorf("%w: warning window must be shorter than timeout", ErrInvalidSessionConfigs)
	}
	if debounce >= timeout-window {
		return fmt.Errorf("%w: debounce must be shorter than the time before the warning", ErrInvalidSessionConfigs)
	}
	return nil
}
