// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/MKhiriev/go-health-keeper/internal/session"
	"github.com/MKhiriev/go-health-keeper/internal/tui"
	"github.com/MKhiriev/go-health-keeper/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}

// UI is the interactive surface the client drives. *tui.TUI implements it.
type UI interface {
	// LoginFlow blocks until the user is authenticated. It returns
	// tui.ErrUserQuit when the user leaves instead.
	LoginFlow(ctx context.Context, notice string) (models.Session, error)

	// MainLoop blocks while the user works with records and reports why it
	// ended.
	MainLoop(ctx context.Context, records service.ClientRecordService, hub *session.Hub, notifier *tui.Notifier) (tui.ExitReason, error)
}
