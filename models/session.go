// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is the client-side view of an authenticated session.
type Session struct {
	// SubjectID identifies the authenticated subject. All key derivation and
	// audit attribution use it.
	SubjectID string `json:"subject_id"`

	// Token is the bearer token presented to the server.
	Token string `json:"-"`

	// KeySalt is the base64 encoded per-user salt, if the account has one.
	KeySalt string `json:"key_salt,omitempty"`

	// ExpiresAt is when the server will stop honouring Token.
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionState is the server's answer to a session validity check.
type SessionState struct {
	SubjectID string    `json:"subject_id"`
	Valid     bool      `json:"valid"`
	ExpiresAt time.Time `json:"expires_at"`
}
