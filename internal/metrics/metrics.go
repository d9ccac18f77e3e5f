// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus collectors shared by the client and
// the server. Labels never carry subject ids or field values.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	AuditRecorded      *prometheus.CounterVec
	AuditWriteFailures prometheus.Counter
	FieldDecryptFails  *prometheus.CounterVec
	SessionLogouts     *prometheus.CounterVec
	RetentionPurged    prometheus.Counter
}

// New creates all collectors and registers them with reg. A nil reg uses the
// default Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		AuditRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "health_keeper_audit_recorded_total",
			Help: "Total number of audit entries written, by action",
		}, []string{"action"}),
		AuditWriteFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "health_keeper_audit_write_failures_total",
			Help: "Total number of audit entries that could not be persisted",
		}),
		FieldDecryptFails: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "health_keeper_field_decrypt_failures_total",
			Help: "Total number of sensitive fields that failed to decrypt, by entity kind",
		}, []string{"kind"}),
		SessionLogouts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "health_keeper_session_logouts_total",
			Help: "Total number of session terminations, by reason",
		}, []string{"reason"}),
		RetentionPurged: factory.NewCounter(prometheus.CounterOpts{
			Name: "health_keeper_audit_retention_purged_total",
			Help: "Total number of audit entries removed by retention",
		}),
	}
}

// Nop returns collectors bound to a private registry. Useful where metrics
// are not exported, such as tests.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}

// IncAuditRecorded increments the recorded counter for action.
func (m *Metrics) IncAuditRecorded(action string) {
	m.AuditRecorded.WithLabelValues(action).Inc()
}

// IncAuditWriteFailures increments the audit failure counter.
func (m *Metrics) IncAuditWriteFailures() {
	m.AuditWriteFailures.Inc()
}

// IncFieldDecryptFailures increments the decrypt failure counter for kind.
func (m *Metrics) IncFieldDecryptFailures(kind string) {
	m.FieldDecryptFails.WithLabelValues(kind).Inc()
}

// IncSessionLogouts increments the logout counter for reason.
func (m *Metrics) IncSessionLogouts(reason string) {
	m.SessionLogouts.WithLabelValues(reason).Inc()
}

// AddRetentionPurged adds n purged audit entries.
func (m *Metrics) AddRetentionPurged(n int64) {
	if n > 0 {
		m.RetentionPurged.Add(float64(n))
	}
}
