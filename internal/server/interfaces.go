package server

import "context"

// Server defines the lifecycle of the transport servers managed by this
// package.
type Server interface {
	// RunServer starts every configured transport and the background jobs
	// and blocks until ctx is done or a stop signal arrives.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the servers and frees associated resources.
	Shutdown()
}

// BackgroundRunner starts non-blocking jobs bound to ctx, such as the
// retention worker.
type BackgroundRunner interface {
	Run(ctx context.Context)
}
