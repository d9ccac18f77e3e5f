// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, jti).
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set.
	// The subject claim carries the subject id and the ID claim carries
	// the session id used for revocation.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// SubjectID is a cached copy of the "sub" claim.
	SubjectID string `json:"-"`

	// SessionID is a cached copy of the "jti" claim.
	SessionID string `json:"-"`
}

// GetSubjectID returns the subject claim, failing when it is empty.
func (t *Token) GetSubjectID() (string, error) {
	if t.SubjectID != "" {
		return t.SubjectID, nil
	}
	sub, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("empty subject claim")
	}
	return sub, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
