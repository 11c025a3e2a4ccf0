// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates a fresh config from LEDGER_* environment variables
// using the caarlos0/env library. Struct fields are mapped via their `env`
// and `envPrefix` tags defined on [StructuredConfig] and its nested types.
func parseEnv() (*StructuredConfig, error) {
	cfg := &StructuredConfig{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return cfg, nil
}
