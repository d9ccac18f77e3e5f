// Package workers runs the store's background jobs. Today that is the audit
// retention sweep; the server starts the workers before it begins listening
// and stops them through the context it passes to Run.
package workers

import "context"

// Worker is a background job. Run must not block: it starts its own
// goroutine, which exits when ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
