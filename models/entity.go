// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EntityKind names a category of health record. The kind selects which
// fields of a record are treated as protected health information.
type EntityKind string

const (
	// KindTestResult is a laboratory test result.
	KindTestResult EntityKind = "test_result"
	// KindDailyLog is a daily lifestyle log entry.
	KindDailyLog EntityKind = "daily_log"
	// KindHealthProfile is the subject's long-lived health profile.
	KindHealthProfile EntityKind = "health_profile"
)

// EntityKinds lists every kind known to the application in display order.
var EntityKinds = []EntityKind{KindTestResult, KindDailyLog, KindHealthProfile}

// Valid reports whether k is one of [EntityKinds].
func (k EntityKind) Valid() bool {
	for _, known := range EntityKinds {
		if k == known {
			return true
		}
	}
	return false
}

// String implements [fmt.Stringer].
func (k EntityKind) String() string {
	return string(k)
}

// Title returns a human readable label for the kind.
func (k EntityKind) Title() string {
	switch k {
	case KindTestResult:
		return "Test results"
	case KindDailyLog:
		return "Daily logs"
	case KindHealthProfile:
		return "Health profile"
	default:
		return string(k)
	}
}

// Record is a flat mapping of field names to values. Values are strings,
// numbers, booleans or nil. A record may hold plaintext or ciphertext
// depending on which side of the codec it sits.
type Record map[string]any

// FieldID is the conventional name of the record identifier field.
const FieldID = "id"

// Clone returns a shallow copy of r. A nil record clones to nil.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ID returns the record identifier stored under [FieldID], or an empty
// string when it is missing or not a string.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}
