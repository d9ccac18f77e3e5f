// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog with the constructors and context helpers the
// server and the client share.
//
// Log entries carry identifiers only: subject ids, record ids, entity kinds
// and audit actions. Field values of health records are never logged.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ClientLogFile is created next to the client executable.
const ClientLogFile = "health-keeper-client.log"

// Logger embeds zerolog.Logger, so the whole zerolog API is available on it.
type Logger struct {
	zerolog.Logger
}

// NewLogger returns a JSON logger on stdout tagged with role. Every entry
// gets a timestamp and the calling function under "func".
func NewLogger(role string) *Logger {
	return build(os.Stdout, role)
}

// NewClientLogger is NewLogger for the terminal client. Output goes to
// [ClientLogFile] because the TUI owns the terminal; if the file cannot be
// opened the logs are dropped.
func NewClientLogger(role string) *Logger {
	var w io.Writer = io.Discard

	if execPath, err := os.Executable(); err == nil {
		path := filepath.Join(filepath.Dir(execPath), ClientLogFile)
		if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err == nil {
			w = f
		}
	}

	return build(w, role)
}

func build(w io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{
		zerolog.New(w).With().
			Str("role", role).
			Timestamp().
			Caller().
			Logger(),
	}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can take extra fields without touching
// the receiver.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithSubject returns a child logger whose entries carry subject_id.
func (l *Logger) WithSubject(subjectID string) *Logger {
	return &Logger{l.With().Str("subject_id", subjectID).Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx with zerolog's WithContext,
// or zerolog's default logger. It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
