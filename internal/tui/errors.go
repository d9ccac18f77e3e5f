// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-health-keeper/internal/crypto"
	"github.com/MKhiriev/go-health-keeper/internal/service"
	"github.com/MKhiriev/go-health-keeper/internal/store"
)

// ErrUserQuit is returned when the user leaves the program from a screen.
var ErrUserQuit = errors.New("user quit")

// humanizeError turns service errors into short messages for the status line.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrWrongPassword):
		return "Wrong login or password"
	case errors.Is(err, store.ErrLoginAlreadyExists):
		return "This login is already taken"
	case errors.Is(err, service.ErrInvalidDataProvided):
		return "Some values are invalid"
	case errors.Is(err, store.ErrRecordNotFound):
		return "Record not found"
	case errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, service.ErrSessionRevoked),
		errors.Is(err, service.ErrTokenIsExpiredOrInvalid):
		return "Session is no longer valid, please sign in again"
	case errors.Is(err, crypto.ErrConfiguration):
		return "Encryption is misconfigured; records cannot be opened"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Server is unreachable"
	}

	return err.Error()
}
