// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import "errors"

var (
	// ErrSessionExpired is delivered to the notifier when the guard logs the
	// user out. Its message is meant to be shown as is.
	ErrSessionExpired = errors.New("logged out due to inactivity")

	// ErrInvalidOptions is returned by NewGuard for inconsistent timings.
	ErrInvalidOptions = errors.New("invalid session guard options")
)
