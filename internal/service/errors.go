package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrSessionRevoked          = errors.New("session was signed out")

	ErrVersionIsNotSpecified = errors.New("version is not specified")

	ErrValidationNoSubjectID   = errors.New("no subject ID was given")
	ErrValidationInvalidID     = errors.New("record id is not a valid UUID")
	ErrValidationUnknownKind   = errors.New("unknown entity kind")
	ErrValidationNoRecordGiven = errors.New("no record provided")
)

// Client-side errors.
var (
	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrLoginOnServer    = errors.New("login on server failed")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrRecordMismatch   = errors.New("record id does not match")
	ErrExportFailed     = errors.New("export failed")
)
