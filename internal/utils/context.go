// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-health-keeper/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// SubjectIDCtxKey is the key used to store the authenticated subject id
	// in the context.
	//
	//	ctx := context.WithValue(ctx, utils.SubjectIDCtxKey, "7a1f...")
	SubjectIDCtxKey = contextKey("subjectID")

	// TokenCtxKey stores the parsed session token of the request.
	TokenCtxKey = contextKey("token")
)

// GetSubjectIDFromContext retrieves the subject id from the context.
//
// ok is false when the value is missing, empty or of an unexpected type.
func GetSubjectIDFromContext(ctx context.Context) (string, bool) {
	subjectID, ok := ctx.Value(SubjectIDCtxKey).(string)
	return subjectID, ok && subjectID != ""
}

// GetTokenFromContext retrieves the parsed session token from the context.
func GetTokenFromContext(ctx context.Context) (models.Token, bool) {
	token, ok := ctx.Value(TokenCtxKey).(models.Token)
	return token, ok
}

// WithSession stores both the subject id and its token in ctx.
func WithSession(ctx context.Context, token models.Token) context.Context {
	ctx = context.WithValue(ctx, SubjectIDCtxKey, token.SubjectID)
	return context.WithValue(ctx, TokenCtxKey, token)
}
