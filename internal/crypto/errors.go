// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrConfiguration means the cryptographic primitives cannot be used at
	// all: the key derivation input is invalid, the random source failed or
	// the cipher could not be built. It is fatal for the operation and must
	// never be swallowed.
	ErrConfiguration = errors.New("crypto configuration failure")

	// ErrDecryption means a single envelope could not be opened. Callers
	// decide whether one bad field invalidates the whole record.
	ErrDecryption = errors.New("decryption failure")

	// ErrUnsupportedValue means EncryptField was handed a value that is
	// neither a string nor a number.
	ErrUnsupportedValue = errors.New("unsupported field value type")
)
