// Package workers runs the long-lived background loops of the client: the
// periodic sync job and the network watcher.
//
// Every worker blocks in Run until its context is cancelled. Workers are
// started together and stopped together.
package workers

import "context"

// Worker is a background loop.
//
// Run blocks until ctx is cancelled or the worker fails. A nil return after
// cancellation is a clean shutdown.
//
//	type ticker struct{}
//
//	func (t *ticker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a plain function to Worker.
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
