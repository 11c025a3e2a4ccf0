// Package config provides configuration loading, merging, and validation
// facilities for the ledger desk and ledgerctl.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. JSON or YAML config file (path from LEDGER_CONFIG or --config)
//  3. Environment variables (LEDGER_ prefix)
//  4. Command-line flags
//
// The main entry points are [GetClientConfig] for binaries that own their
// argument list and [Loader] for cobra commands that share a flag set.
package config
