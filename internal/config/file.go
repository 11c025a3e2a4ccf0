package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors StructuredConfig with the keys used in config files.
type fileConfig struct {
	Adapter struct {
		Address     string   `json:"address" yaml:"address"`
		Region      uint8    `json:"region" yaml:"region"`
		Password    string   `json:"password" yaml:"password"`
		DialTimeout Duration `json:"dial_timeout" yaml:"dial_timeout"`
		IOTimeout   Duration `json:"io_timeout" yaml:"io_timeout"`
	} `json:"adapter" yaml:"adapter"`

	Workers struct {
		BalanceInterval Duration `json:"balance_interval" yaml:"balance_interval"`
		ObserverMode    string   `json:"observer_mode" yaml:"observer_mode"`
	} `json:"workers" yaml:"workers"`

	Storage struct {
		JournalDSN string `json:"journal_dsn" yaml:"journal_dsn"`
	} `json:"storage" yaml:"storage"`

	Status struct {
		Address string `json:"address" yaml:"address"`
	} `json:"status" yaml:"status"`

	Log struct {
		File  string `json:"file" yaml:"file"`
		Level string `json:"level" yaml:"level"`
	} `json:"log" yaml:"log"`

	Policy struct {
		RejectNegative bool `json:"reject_negative" yaml:"reject_negative"`
	} `json:"policy" yaml:"policy"`
}

// parseFile decodes a JSON or YAML config file. The format is picked by
// extension: .yaml and .yml are YAML, everything else is JSON.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return &StructuredConfig{
		Adapter: Adapter{
			Address:     fc.Adapter.Address,
			Region:      fc.Adapter.Region,
			Password:    fc.Adapter.Password,
			DialTimeout: time.Duration(fc.Adapter.DialTimeout),
			IOTimeout:   time.Duration(fc.Adapter.IOTimeout),
		},
		Workers: Workers{
			BalanceInterval: time.Duration(fc.Workers.BalanceInterval),
			ObserverMode:    fc.Workers.ObserverMode,
		},
		Storage: Storage{JournalDSN: fc.Storage.JournalDSN},
		Status:  Status{Address: fc.Status.Address},
		Log:     Log{File: fc.Log.File, Level: fc.Log.Level},
		Policy:  Policy{RejectNegative: fc.Policy.RejectNegative},
	}, nil
}

// Duration is a wrapper around time.Duration that supports JSON and YAML
// unmarshaling from strings like "1h", "30s" as well as plain nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!int" {
		var ns int64
		if err := node.Decode(&ns); err != nil {
			return err
		}
		*d = Duration(time.Duration(ns))
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	tmp, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}
