// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the terminal desk of the ledger client.
//
// The login flow shows a masked password form and, while the ledger is
// unreachable, a waiting screen that retries on its own. The desk screen
// shows the account panel, the transfer form and the recent transfers.
// Balances are read from the balance board on a UI tick; the desk never
// touches the observer's connection.
package tui
