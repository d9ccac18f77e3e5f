// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It runs the sign-in flow, binds record access to the resulting session and
// keeps an idle guard armed for as long as the record browser is open. An
// explicit logout or an idle timeout returns the user to the sign-in flow.
package client
