// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// go-health-keeper server handlers and the client error mapper.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies. The client matches on them to recover the service
// error behind a status code, so the wording is part of the wire contract.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing account.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is expired
	// or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgSessionRevoked is returned when a token belongs to a session that
	// was signed out.
	MsgSessionRevoked = "session was signed out"

	// MsgNoSubjectIDProvided is returned when a handler requires the
	// authenticated subject but none is present in the request context.
	MsgNoSubjectIDProvided = "no subject ID provided"

	// MsgUnknownEntityKind is returned for a kind outside the known set.
	MsgUnknownEntityKind = "unknown entity kind"

	// MsgInvalidRecordID is returned when a record id is not a UUID.
	MsgInvalidRecordID = "invalid record id"

	// MsgRecordNotFound is returned when the record does not exist for the
	// current subject.
	MsgRecordNotFound = "record not found"

	// MsgRecordAlreadyExists is returned when a record id is reused.
	MsgRecordAlreadyExists = "record already exists"

	// MsgRegistrationFailed is returned when registration fails for a reason
	// other than bad input or a taken login.
	MsgRegistrationFailed = "registration failed"

	// MsgLoginFailed is returned when login fails after the credentials were
	// accepted, e.g. while issuing the session token.
	MsgLoginFailed = "login failed"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// rejected because the requested login is already in use.
	MsgLoginAlreadyExists = "login already exists"

	// MsgVersionIsNotSpecified is returned by /api/version/ when the server
	// was started without a version.
	MsgVersionIsNotSpecified = "version is not specified"
)
