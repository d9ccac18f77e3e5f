// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// MinIterations is the lowest PBKDF2 work factor the deriver accepts.
	MinIterations = 100_000

	// KeyLen is the length of derived field keys (AES-256).
	KeyLen = 32

	// DefaultAppSalt is the application wide salt used when a subject has
	// no per-user salt. Changing it makes every stored field unreadable.
	DefaultAppSalt = "go-health-keeper/phi-field-key/v1"
)

// pbkdf2Deriver is the private implementation of [KeyDeriver] on top of
// PBKDF2-HMAC-SHA256.
type pbkdf2Deriver struct {
	iterations int
	appSalt    []byte
}

// NewKeyDeriver constructs a [KeyDeriver]. iterations below [MinIterations]
// are a configuration error; zero iterations or an empty appSalt select the
// defaults.
func NewKeyDeriver(iterations int, appSalt string) (KeyDeriver, error) {
	if iterations == 0 {
		iterations = MinIterations
	}
	if appSalt == "" {
		appSalt = DefaultAppSalt
	}
	if iterations < MinIterations {
		return nil, fmt.Errorf("%w: pbkdf2 iterations %d below minimum %d", ErrConfiguration, iterations, MinIterations)
	}

	return &pbkdf2Deriver{
		iterations: iterations,
		appSalt:    []byte(appSalt),
	}, nil
}

// DeriveKey implements [KeyDeriver].
func (d *pbkdf2Deriver) DeriveKey(subjectID string) ([]byte, error) {
	return d.DeriveKeyWithSalt(subjectID, nil)
}

// DeriveKeyWithSalt implements [KeyDeriver].
func (d *pbkdf2Deriver) DeriveKeyWithSalt(subjectID string, salt []byte) ([]byte, error) {
	if subjectID == "" {
		return nil, fmt.Errorf("%w: empty subject id", ErrConfiguration)
	}
	if len(salt) == 0 {
		salt = d.appSalt
	}

	key := pbkdf2.Key([]byte(subjectID), salt, d.iterations, KeyLen, sha256.New)
	if len(key) != KeyLen {
		return nil, fmt.Errorf("%w: derived key has length %d", ErrConfiguration, len(key))
	}

	return key, nil
}
