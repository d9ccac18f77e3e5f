// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

// State is the guard's position in the idle state machine.
type State int

const (
	Active State = iota
	WarningIssued
	LoggedOut
)

// String implements [fmt.Stringer].
func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case WarningIssued:
		return "warning_issued"
	case LoggedOut:
		return "logged_out"
	default:
		return "unknown"
	}
}

// Activity is a kind of qualifying user interaction.
type Activity int

const (
	KeyPress Activity = iota
	PointerPress
	Scroll
	Touch
)

// String implements [fmt.Stringer].
func (a Activity) String() string {
	switch a {
	case KeyPress:
		return "key_press"
	case PointerPress:
		return "pointer_press"
	case Scroll:
		return "scroll"
	case Touch:
		return "touch"
	default:
		return "unknown"
	}
}
