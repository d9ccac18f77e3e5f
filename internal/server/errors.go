// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated means NewServer got no listener to run.
var errNoServersAreCreated = errors.New("no servers are created")
