// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// KDFIterations is the PBKDF2 work factor, zero for the default.
	KDFIterations int
	// KDFSalt overrides the application wide salt, empty for the default.
	KDFSalt string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the HTTP endpoint address used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientSession holds the idle guard timings.
type ClientSession struct {
	Timeout       time.Duration
	WarningWindow time.Duration
	Debounce      time.Duration
}

// ClientAudit holds client audit settings.
type ClientAudit struct {
	WriteTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Session ClientSession
	Audit   ClientAudit
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			KDFIterations: cfg.App.KDFIterations,
			KDFSalt:       cfg.App.KDFSalt,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Session: ClientSession{
			Timeout:       cfg.Session.Timeout,
			WarningWindow: cfg.Session.WarningWindow,
			Debounce:      cfg.Session.Debounce,
		},
		Audit: ClientAudit{
			WriteTimeout: cfg.Audit.WriteTimeout,
		},
	}

	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if clientCfg.Audit.WriteTimeout == 0 {
		clientCfg.Audit.WriteTimeout = defaultAuditWriteTimeout
	}

	return clientCfg
}
