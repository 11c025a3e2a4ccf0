// Package server runs the optional status HTTP server of the ledger desk.
//
// The server is managed as a worker: Start binds the listener and serves in
// the background, Stop shuts it down gracefully.
package server
