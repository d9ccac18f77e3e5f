package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/MKhiriev/go-health-keeper/internal/adapter"
	"github.com/MKhiriev/go-health-keeper/internal/audit"
	"github.com/MKhiriev/go-health-keeper/internal/codec"
	"github.com/MKhiriev/go-health-keeper/internal/config"
	"github.com/MKhiriev/go-health-keeper/internal/crypto"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/metrics"
	"github.com/MKhiriev/go-health-keeper/internal/validators"
	"github.com/MKhiriev/go-health-keeper/models"
)

// ClientServices holds the session independent client services. Record
// access is bound to a session through RecordsFor.
type ClientServices struct {
	AuthService ClientAuthService

	adapter  adapter.ServerAdapter
	deriver  crypto.KeyDeriver
	cipher   crypto.FieldCipher
	trail    *audit.Trail
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewClientServices(serverAdapter adapter.ServerAdapter, cfg *config.ClientConfig, m *metrics.Metrics, logger *logger.Logger) (*ClientServices, error) {
	validator, err := validators.NewStructValidator()
	if err != nil {
		return nil, err
	}

	deriver, err := crypto.NewKeyDeriver(cfg.App.KDFIterations, cfg.App.KDFSalt)
	if err != nil {
		return nil, err
	}

	trail := audit.NewTrail(serverAdapter, logger,
		audit.WithTimeout(cfg.Audit.WriteTimeout),
		audit.WithValidator(validator),
		audit.WithMetrics(m),
		audit.WithQueue(audit.DefaultQueueSize),
	)

	return &ClientServices{
		AuthService: NewClientAuthService(serverAdapter, validator, logger),
		adapter:     serverAdapter,
		deriver:     deriver,
		cipher:      crypto.NewFieldCipher(),
		trail:       trail,
		metrics:     m,
		logger:      logger,
	}, nil
}

// RecordsFor returns the record service for sess. The codec is keyed with the
// session's per-user salt, or the application salt when it has none.
func (c *ClientServices) RecordsFor(sess models.Session) (ClientRecordService, error) {
	if sess.SubjectID == "" {
		return nil, ErrNotAuthenticated
	}

	var salt []byte
	if sess.KeySalt != "" {
		decoded, err := base64.StdEncoding.DecodeString(sess.KeySalt)
		if err != nil {
			return nil, fmt.Errorf("%w: key salt: %w", crypto.ErrConfiguration, err)
		}
		salt = decoded
	}

	recordCodec := codec.New(c.deriver, c.cipher, codec.WithSalt(salt), codec.WithMetrics(c.metrics))
	return NewClientRecordService(sess, c.adapter, recordCodec, c.trail, c.logger), nil
}

// FlushAudit waits until every audit entry recorded so far has been sent to
// the store. Call it before the session token is revoked.
func (c *ClientServices) FlushAudit(ctx context.Context) error {
	return c.trail.Flush(ctx)
}

// Close sends the queued audit entries and stops the audit worker.
func (c *ClientServices) Close() {
	c.trail.Close()
}
