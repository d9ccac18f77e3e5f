// Package config loads the server and client settings.
//
// Values come from environment variables, then command-line flags, then an
// optional JSON file; each later source overrides the fields it sets. Anything still unset takes the defaults in defaults.go, and the
// result is validated before use: key derivation needs at least 100000
// PBKDF2 iterations, and the idle warning window must be shorter than the
// session timeout.
//
// [GetServerConfig] returns the store configuration and [GetClientConfig]
// the view the terminal client needs.
package config
