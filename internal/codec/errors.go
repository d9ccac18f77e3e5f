// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import "errors"

var (
	// ErrUnknownEntityKind is returned for a kind missing from the sensitive
	// field table. Encoding such a record would persist it in plaintext, so
	// both directions refuse it.
	ErrUnknownEntityKind = errors.New("unknown entity kind")

	// ErrInvalidFieldValue is returned by Encode when a sensitive value has a
	// type the field cannot hold, e.g. non-numeric text in a numeric field.
	ErrInvalidFieldValue = errors.New("invalid sensitive field value")

	// ErrMalformedEnvelope marks a stored sensitive value that is not an
	// envelope string at all.
	ErrMalformedEnvelope = errors.New("sensitive field is not an envelope")

	// ErrNotNumeric marks a numeric field whose decrypted text is not a number.
	ErrNotNumeric = errors.New("decrypted value is not numeric")
)
