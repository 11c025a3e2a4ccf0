// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// starting and stopping multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start must not block for the lifetime of the worker: it launches the
// background work bound to ctx and returns. Stop ends that work and waits for
// it to finish. Stop on a worker that was never started is a no-op.
//
// Example implementation:
//
//	type MyWorker struct{ cancel context.CancelFunc }
//
//	func (w *MyWorker) Start(ctx context.Context) error {
//	    ctx, w.cancel = context.WithCancel(ctx)
//	    go process(ctx)
//	    return nil
//	}
//
//	func (w *MyWorker) Stop() { w.cancel() }
type Worker interface {
	Start(ctx context.Context) error
	Stop()
}
