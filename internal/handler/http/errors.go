// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Authorization header failures. All of them are answered with 401.
var (
	ErrEmptyAuthorizationHeader   = errors.New("empty `Authorization` header")
	ErrInvalidAuthorizationHeader = errors.New("`Authorization` header is not a bearer token")
	ErrEmptyToken                 = errors.New("empty token in `Authorization` header")
)
