// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request models against their `validate` tags
// before they reach a repository or the network. Users, stored records and
// audit entries are validated here; the tags live on the models.
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

// Validator validates v. When fields are given only those struct fields are
// checked.
type Validator interface {
	Validate(ctx context.Context, v any, fields ...string) error
}
