// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session implements the idle-session guard.
//
// A [Guard] is created per authenticated session. It owns exactly one pair
// of timers (warning and logout), rearms them on qualifying user activity
// with a debounce, and on expiry signs the session out at the server and
// notifies the UI with [ErrSessionExpired]. [Guard.Stop] clears both timers
// and every activity subscription and may be called any number of times.
//
//	Active --(timeout-window)--> WarningIssued --(timeout)--> LoggedOut
//	  ^                              |
//	  +-------- activity ------------+
package session
