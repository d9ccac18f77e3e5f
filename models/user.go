// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the subject identifier (UUID). It doubles as the key
	// derivation input on the client, so it never changes for an account.
	UserID string `json:"subject_id,omitempty"`

	// Login is the unique user login identifier.
	Login string `json:"login" validate:"required,min=3,max=64"`

	// Password is the plaintext password. It is only present in register and
	// login requests and is never persisted.
	Password string `json:"password,omitempty" validate:"required,min=8,max=256"`

	// PasswordHash is the encoded argon2id hash kept by the server.
	PasswordHash string `json:"-"`

	// KeySalt is the base64 encoded per-user key derivation salt issued at
	// registration. Empty for accounts created before per-user salts.
	KeySalt string `json:"key_salt,omitempty"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
