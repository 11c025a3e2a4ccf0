// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the interactive part of the desk: the login flow and the desk loop.
type UI interface {
	// LoginFlow blocks until the ledger accepted a password. It returns
	// tui.ErrUserQuit when the user leaves instead.
	LoginFlow(ctx context.Context) error

	// MainLoop runs the desk. logout reports whether the user asked to log
	// out rather than quit.
	MainLoop(ctx context.Context) (logout bool, err error)
}
