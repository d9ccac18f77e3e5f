// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-health-keeper/internal/crypto"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/MKhiriev/go-health-keeper/internal/metrics"
	"github.com/MKhiriev/go-health-keeper/models"
)

//go:generate mockgen -source=codec.go -destination=../mock/codec_mock.go -package=mock

// RecordCodec encodes plaintext records for storage and decodes stored
// records for display.
type RecordCodec interface {
	Encode(ctx context.Context, kind models.EntityKind, record models.Record, subjectID string) (models.Record, error)
	Decode(ctx context.Context, kind models.EntityKind, record models.Record, subjectID string) (models.Record, Warnings, error)
}

// Codec is the default [RecordCodec]. A Codec is bound to one session's key
// salt and is safe for concurrent use.
type Codec struct {
	deriver crypto.KeyDeriver
	cipher  crypto.FieldCipher
	metrics *metrics.Metrics
	salt    []byte
}

// Option configures a Codec.
type Option func(*Codec)

// WithSalt binds the codec to a per-user key derivation salt.
func WithSalt(salt []byte) Option {
	return func(c *Codec) {
		c.salt = salt
	}
}

// WithMetrics reports decode failures to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Codec) {
		c.metrics = m
	}
}

// New constructs a Codec.
func New(deriver crypto.KeyDeriver, cipher crypto.FieldCipher, opts ...Option) *Codec {
	c := &Codec{
		deriver: deriver,
		cipher:  cipher,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode returns a copy of record with every present, non-nil sensitive
// field replaced by its envelope. The key is derived for this call only.
func (c *Codec) Encode(ctx context.Context, kind models.EntityKind, record models.Record, subjectID string) (models.Record, error) {
	specs, ok := sensitiveFields[kind]
	if !ok {
		return nil, fmt.Errorf("encode %q: %w", kind, ErrUnknownEntityKind)
	}
	if record == nil {
		return nil, nil
	}

	key, err := c.deriver.DeriveKeyWithSalt(subjectID, c.salt)
	if err != nil {
		return nil, fmt.Errorf("encode %s: derive key: %w", kind, err)
	}
	defer clear(key)

	out := record.Clone()
	for _, spec := range specs {
		value, present := out[spec.Name]
		if !present || value == nil {
			continue
		}

		if err := checkEncodable(spec, value); err != nil {
			return nil, fmt.Errorf("encode %s field %q: %w", kind, spec.Name, err)
		}

		envelope, err := c.cipher.EncryptField(value, key)
		if err != nil {
			if errors.Is(err, crypto.ErrUnsupportedValue) {
				return nil, fmt.Errorf("encode %s field %q: %w: %w", kind, spec.Name, ErrInvalidFieldValue, err)
			}
			return nil, fmt.Errorf("encode %s field %q: %w", kind, spec.Name, err)
		}
		out[spec.Name] = envelope
	}

	return out, nil
}

// Decode returns a copy of record with every present, non-nil sensitive
// field decrypted. A field that fails is set to nil and reported in the
// returned Warnings; the error is non-nil only when the kind is unknown or
// the key cannot be derived.
func (c *Codec) Decode(ctx context.Context, kind models.EntityKind, record models.Record, subjectID string) (models.Record, Warnings, error) {
	specs, ok := sensitiveFields[kind]
	if !ok {
		return nil, nil, fmt.Errorf("decode %q: %w", kind, ErrUnknownEntityKind)
	}
	if record == nil {
		return nil, nil, nil
	}

	key, err := c.deriver.DeriveKeyWithSalt(subjectID, c.salt)
	if err != nil {
		return nil, nil, fmt.Errorf("decode %s: derive key: %w", kind, err)
	}
	defer clear(key)

	log := logger.FromContext(ctx)
	out := record.Clone()
	var warnings Warnings

	for _, spec := range specs {
		value, present := out[spec.Name]
		if !present || value == nil {
			continue
		}

		decoded, err := c.decodeField(spec, value, key)
		if err != nil {
			if errors.Is(err, crypto.ErrConfiguration) {
				return nil, nil, fmt.Errorf("decode %s field %q: %w", kind, spec.Name, err)
			}

			out[spec.Name] = nil
			w := FieldWarning{Kind: kind, RecordID: record.ID(), Field: spec.Name, Err: err}
			warnings = append(warnings, w)

			log.Warn().
				Str("func", "codec.Decode").
				Str("kind", kind.String()).
				Str("record_id", w.RecordID).
				Str("field", spec.Name).
				Err(err).
				Msg("sensitive field could not be decoded, value dropped")
			if c.metrics != nil {
				c.metrics.IncFieldDecryptFailures(kind.String())
			}
			continue
		}
		out[spec.Name] = decoded
	}

	return out, warnings, nil
}

func (c *Codec) decodeField(spec FieldSpec, value any, key []byte) (any, error) {
	envelope, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %w (%T)", crypto.ErrDecryption, ErrMalformedEnvelope, value)
	}

	plaintext, err := c.cipher.DecryptField(envelope, key)
	if err != nil {
		return nil, err
	}

	if spec.Type == FieldNumber {
		n, err := strconv.ParseFloat(plaintext, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", crypto.ErrDecryption, ErrNotNumeric)
		}
		return n, nil
	}

	return plaintext, nil
}

// checkEncodable rejects values that would not survive a round trip for the
// field's type.
func checkEncodable(spec FieldSpec, value any) error {
	switch v := value.(type) {
	case bool:
		return fmt.Errorf("%w: boolean", ErrInvalidFieldValue)
	case string:
		if spec.Type == FieldNumber {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return fmt.Errorf("%w: %q is not a number", ErrInvalidFieldValue, v)
			}
		}
	}
	return nil
}
