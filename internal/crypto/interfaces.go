// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyDeriver turns a subject identifier into the symmetric key that protects
// that subject's health fields. Derivation is deterministic: the same
// subject and salt always yield the same 32-byte key, so a record encrypted
// in one session can be decrypted in the next without storing the key.
type KeyDeriver interface {
	// DeriveKey derives the field key for subjectID using the application
	// wide salt.
	DeriveKey(subjectID string) ([]byte, error)

	// DeriveKeyWithSalt derives the field key for subjectID using a
	// per-user salt. An empty salt falls back to the application wide salt.
	DeriveKeyWithSalt(subjectID string, salt []byte) ([]byte, error)
}

// FieldCipher encrypts and decrypts single field values.
//
// The envelope is base64(nonce ‖ ciphertext ‖ tag) with a fresh random
// 12-byte nonce per call, so encrypting the same value twice never yields
// the same envelope.
type FieldCipher interface {
	// EncryptField encrypts a string or numeric value. Numbers are encoded
	// as their shortest decimal form before encryption.
	EncryptField(value any, key []byte) (string, error)

	// DecryptField opens an envelope produced by EncryptField and returns the
	// plaintext as a string. Any tampering, truncation, malformed encoding or
	// wrong key yields an error wrapping [ErrDecryption].
	DecryptField(envelope string, key []byte) (string, error)
}
