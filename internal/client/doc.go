// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive desk application runtime.
//
// It wires the terminal UI, the ledger services and the background workers
// (balance observer, status server) into a single process lifecycle.
package client
