// Package http implements the read-only status API of the ledger desk.
//
// It exposes the last observed balance, the transfer journal and the
// Prometheus metrics of the session layer. Access logging and request ids are
// handled here before requests reach the handlers.
package http
