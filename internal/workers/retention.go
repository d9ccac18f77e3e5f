// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/service"
)

// RetentionWorker periodically removes audit entries past their retention
// period. It is the only caller of AuditService.PurgeExpired.
type RetentionWorker struct {
	audit    service.AuditService
	interval time.Duration
	now      func() time.Time
	logger   *logger.Logger

	done chan struct{}
}

func NewRetentionWorker(audit service.AuditService, interval time.Duration, logger *logger.Logger) *RetentionWorker {
	return &RetentionWorker{
		audit:    audit,
		interval: interval,
		now:      time.Now,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Run sweeps once immediately and then every interval until ctx is done.
// A non-positive interval disables the worker.
func (w *RetentionWorker) Run(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Warn().Msg("audit retention worker disabled: non-positive interval")
		close(w.done)
		return
	}

	go func() {
		defer close(w.done)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.sweep(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.sweep(ctx)
			}
		}
	}()
}

// Done is closed once the worker has stopped.
func (w *RetentionWorker) Done() <-chan struct{} {
	return w.done
}

func (w *RetentionWorker) sweep(ctx context.Context) {
	purged, err := w.audit.PurgeExpired(ctx, w.now())
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Err(err).Str("func", "RetentionWorker.sweep").Msg("audit retention sweep failed")
		return
	}
	if purged > 0 {
		w.logger.Info().Int64("purged", purged).Msg("expired audit entries removed")
	}
}
