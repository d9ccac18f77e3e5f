// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

// Session is the authoritative source of session validity. In the client it
// is backed by the server.
type Session interface {
	// Valid reports whether the session may be used.
	Valid(ctx context.Context) bool
	// SignOut terminates the session at its source.
	SignOut(ctx context.Context) error
}

// Notifier receives guard transitions. Calls are made from timer goroutines
// and must not block for long.
type Notifier interface {
	// OnWarning is called on Active -> WarningIssued with the time left.
	OnWarning(remaining time.Duration)
	// OnResume is called on WarningIssued -> Active.
	OnResume()
	// OnLogout is called once on the transition to LoggedOut.
	OnLogout(err error)
}

// ActivitySource delivers qualifying user interactions to subscribers.
type ActivitySource interface {
	// Subscribe registers fn and returns a function that removes it.
	Subscribe(fn func(Activity)) (unsubscribe func())
}
