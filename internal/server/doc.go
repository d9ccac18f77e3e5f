// Package server runs the health keeper's transports.
//
// It starts the HTTP API and the gRPC health endpoint, launches the
// background workers with the same lifetime, and shuts everything down on
// SIGTERM, SIGINT or SIGQUIT.
package server
