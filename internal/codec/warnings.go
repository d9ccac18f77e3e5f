// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-health-keeper/models"
)

// FieldWarning reports one sensitive field that Decode had to null out.
type FieldWarning struct {
	Kind     models.EntityKind
	RecordID string
	Field    string
	Err      error
}

// Error implements error.
func (w FieldWarning) Error() string {
	return fmt.Sprintf("%s %s field %q: %v", w.Kind, w.RecordID, w.Field, w.Err)
}

// Unwrap exposes the underlying cause for errors.Is.
func (w FieldWarning) Unwrap() error {
	return w.Err
}

// Warnings collects the per-field problems of one or more Decode calls.
type Warnings []FieldWarning

// Err joins all warnings into one error, or returns nil when empty.
func (ws Warnings) Err() error {
	if len(ws) == 0 {
		return nil
	}
	errs := make([]error, 0, len(ws))
	for _, w := range ws {
		errs = append(errs, w)
	}
	return errors.Join(errs...)
}

// Fields returns the names of the affected fields in order.
func (ws Warnings) Fields() []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.Field)
	}
	return out
}
