// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec encodes and decodes health records field by field.
//
// Which fields are sensitive is decided by a single static table keyed by
// entity kind (see [SensitiveFields]). Encode replaces every present,
// non-nil sensitive value with a ciphertext envelope; Decode reverses it and
// re-parses numeric fields. Everything else passes through untouched.
//
// Decode is deliberately partial: a field that cannot be opened is set to
// nil and reported as a [FieldWarning] while the rest of the record still
// decodes. Only configuration failures and unknown entity kinds abort the
// whole operation.
package codec
