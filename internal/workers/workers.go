package workers

import (
	"context"
	"fmt"
)

type Workers struct {
	workers []Worker
}

// New aggregates workers. Nil entries are skipped so optional workers can be
// passed unconditionally.
func New(workers ...Worker) *Workers {
	w := &Workers{}
	for _, worker := range workers {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

// Start starts the workers in order. If one fails, the ones already started
// are stopped and the error is returned.
func (w *Workers) Start(ctx context.Context) error {
	for i, worker := range w.workers {
		if err := worker.Start(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				w.workers[j].Stop()
			}
			return fmt.Errorf("%w: worker #%d: %w", ErrStartingWorker, i, err)
		}
	}
	return nil
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
