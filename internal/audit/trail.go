// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package audit records who touched which health record, when and how.
//
// The trail is fail-open: a write that cannot be persisted is logged and
// counted, and the user-facing operation carries on. Entries are append only.
// With [WithQueue] writes happen on a single background worker, so the caller
// never waits for the store and entries still arrive in call order.
package audit

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/metrics"
	"github.com/MKhiriev/go-health-keeper/internal/validators"
	"github.com/MKhiriev/go-health-keeper/models"
)

const (
	// DefaultWriteTimeout bounds a single audit write.
	DefaultWriteTimeout = 5 * time.Second

	// DefaultQueueSize is the queue length the client uses.
	DefaultQueueSize = 256
)

// ErrQueueFull is logged when an entry is dropped because the background
// writer is too far behind.
var ErrQueueFull = errors.New("audit queue is full")

// queued is either an entry or, when flushed is set, a flush marker.
type queued struct {
	ctx     context.Context
	entry   models.AuditEntry
	flushed chan struct{}
}

// Trail is the default [Recorder].
type Trail struct {
	writer    Writer
	validator validators.Validator
	metrics   *metrics.Metrics
	logger    *logger.Logger
	timeout   time.Duration
	now       func() time.Time

	mu        sync.RWMutex
	queue     chan queued
	closed    bool
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Trail.
type Option func(*Trail)

// WithTimeout overrides [DefaultWriteTimeout]. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(t *Trail) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithMetrics reports recorded entries and failures to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(t *Trail) {
		t.metrics = m
	}
}

// WithValidator checks every entry before it is written.
func WithValidator(v validators.Validator) Option {
	return func(t *Trail) {
		t.validator = v
	}
}

// WithQueue moves writes to a background worker with a buffer of size
// entries. Record then returns without waiting for the store; an entry that
// does not fit is dropped, logged and counted. Non-positive sizes keep
// writes synchronous.
func WithQueue(size int) Option {
	return func(t *Trail) {
		if size > 0 {
			t.queue = make(chan queued, size)
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Trail) {
		t.now = now
	}
}

// NewTrail constructs a Trail writing through w.
func NewTrail(w Writer, log *logger.Logger, opts ...Option) *Trail {
	t := &Trail{
		writer:  w,
		logger:  log,
		timeout: DefaultWriteTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = logger.Nop()
	}
	if t.queue != nil {
		t.done = make(chan struct{})
		go t.run()
	}
	return t
}

// Record implements [Recorder]. The entry is stamped with a new id and the
// current UTC time. Failures never reach the caller. On a closed queued
// trail the entry is written synchronously.
func (t *Trail) Record(ctx context.Context, actor string, action models.AuditAction, kind models.EntityKind, recordID string, detail map[string]any) {
	entry := models.AuditEntry{
		ID:         uuid.NewString(),
		Actor:      actor,
		Action:     action,
		EntityKind: kind,
		RecordID:   recordID,
		Timestamp:  t.now().UTC(),
		Detail:     maps.Clone(detail),
	}

	if t.validator != nil {
		if err := t.validator.Validate(ctx, &entry); err != nil {
			t.fail(entry, err, "audit entry rejected")
			return
		}
	}

	// a cancelled caller context must not prevent the entry from being written
	ctx = context.WithoutCancel(ctx)

	t.mu.RLock()
	if t.queue != nil && !t.closed {
		select {
		case t.queue <- queued{ctx: ctx, entry: entry}:
		default:
			t.fail(entry, ErrQueueFull, "audit entry dropped")
		}
		t.mu.RUnlock()
		return
	}
	t.mu.RUnlock()

	t.write(ctx, entry)
}

// Flush blocks until every entry recorded before the call has been handed
// to the writer, or ctx is done. It returns at once on a synchronous or
// closed trail.
func (t *Trail) Flush(ctx context.Context) error {
	marker := queued{flushed: make(chan struct{})}

	t.mu.RLock()
	if t.queue == nil || t.closed {
		t.mu.RUnlock()
		return nil
	}
	select {
	case t.queue <- marker:
		t.mu.RUnlock()
	case <-ctx.Done():
		t.mu.RUnlock()
		return ctx.Err()
	}

	select {
	case <-marker.flushed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes what is still queued and stops the background worker. It is
// safe to call more than once and on a synchronous trail.
func (t *Trail) Close() {
	if t.queue == nil {
		return
	}
	t.closeOnce.Do(func() {
		t.mu.Lock()
		t.closed = true
		close(t.queue)
		t.mu.Unlock()
	})
	<-t.done
}

func (t *Trail) run() {
	defer close(t.done)
	for q := range t.queue {
		if q.flushed != nil {
			close(q.flushed)
			continue
		}
		t.write(q.ctx, q.entry)
	}
}

func (t *Trail) write(ctx context.Context, entry models.AuditEntry) {
	writeCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	if err := t.writer.Append(writeCtx, entry); err != nil {
		t.fail(entry, err, "audit write failed")
		return
	}

	if t.metrics != nil {
		t.metrics.IncAuditRecorded(string(entry.Action))
	}
}

func (t *Trail) fail(entry models.AuditEntry, err error, msg string) {
	t.logger.Error().
		Str("func", "audit.Trail.Record").
		Str("audit_id", entry.ID).
		Str("actor", entry.Actor).
		Str("action", string(entry.Action)).
		Str("kind", entry.EntityKind.String()).
		Str("record_id", entry.RecordID).
		Err(err).
		Msg(msg)

	if t.metrics != nil {
		t.metrics.IncAuditWriteFailures()
	}
}
