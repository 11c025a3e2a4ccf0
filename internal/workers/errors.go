package workers

import "errors"

var (
	ErrStartingWorker = errors.New("failed to start worker")
	ErrNoOpener       = errors.New("balance worker has no session opener")
)
