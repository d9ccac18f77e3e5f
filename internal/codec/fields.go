// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"slices"

	"github.com/MKhiriev/go-health-keeper/models"
)

// FieldType tells Decode how to restore a decrypted value.
type FieldType int

const (
	// FieldText values decode to string.
	FieldText FieldType = iota
	// FieldNumber values decode to float64.
	FieldNumber
)

// String implements [fmt.Stringer].
func (t FieldType) String() string {
	if t == FieldNumber {
		return "number"
	}
	return "text"
}

// FieldSpec describes one sensitive field of an entity kind.
type FieldSpec struct {
	Name string
	Type FieldType
}

var sensitiveFields = map[models.EntityKind][]FieldSpec{
	models.KindTestResult: {
		{Name: "concentration", Type: FieldNumber},
		{Name: "motility", Type: FieldNumber},
		{Name: "morphology", Type: FieldNumber},
		{Name: "volume", Type: FieldNumber},
		{Name: "total_count", Type: FieldNumber},
		{Name: "notes", Type: FieldText},
	},
	models.KindDailyLog: {
		{Name: "sleep_hours", Type: FieldNumber},
		{Name: "alcohol_units", Type: FieldNumber},
		{Name: "exercise_minutes", Type: FieldNumber},
		{Name: "stress_level", Type: FieldNumber},
		{Name: "notes", Type: FieldText},
	},
	models.KindHealthProfile: {
		{Name: "date_of_birth", Type: FieldText},
		{Name: "height_cm", Type: FieldNumber},
		{Name: "weight_kg", Type: FieldNumber},
		{Name: "conditions", Type: FieldText},
		{Name: "medications", Type: FieldText},
	},
}

// SensitiveFields returns the sensitive field list for kind and whether the
// kind is known. The returned slice is a copy.
func SensitiveFields(kind models.EntityKind) ([]FieldSpec, bool) {
	specs, ok := sensitiveFields[kind]
	if !ok {
		return nil, false
	}
	return slices.Clone(specs), true
}

// IsSensitive reports whether field of kind is stored encrypted.
func IsSensitive(kind models.EntityKind, field string) bool {
	return slices.ContainsFunc(sensitiveFields[kind], func(s FieldSpec) bool {
		return s.Name == field
	})
}

// KnownKind reports whether kind has an entry in the sensitive field table.
func KnownKind(kind models.EntityKind) bool {
	_, ok := sensitiveFields[kind]
	return ok
}
