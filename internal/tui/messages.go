package tui

import (
	"time"

	"github.com/MKhiriev/go-health-keeper/internal/codec"
	"github.com/MKhiriev/go-health-keeper/models"
)

// NavigateTo switches the active page of the login flow. Payload, when set,
// is delivered to the new page as the next message.
type NavigateTo struct {
	Page    string
	Payload any
}

// LoginResult is produced by the login and register forms.
type LoginResult struct {
	Session models.Session
	Login   string
	Err     error
}

type listLoadedMsg struct {
	kind     models.EntityKind
	records  []models.Record
	warnings codec.Warnings
	err      error
}

type recordLoadedMsg struct {
	kind     models.EntityKind
	record   models.Record
	warnings codec.Warnings
	err      error
}

type recordSavedMsg struct {
	id      string
	created bool
	err     error
}

type recordDeletedMsg struct {
	err error
}

type exportDoneMsg struct {
	err error
}

// Guard transitions, delivered through Notifier.
type (
	sessionWarningMsg struct{ remaining time.Duration }
	sessionResumedMsg struct{}
	sessionExpiredMsg struct{ err error }
)
