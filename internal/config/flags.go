package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// Loader binds the configuration flags to a flag set and, once the set has
// been parsed, merges them with the other sources.
type Loader struct {
	fs *pflag.FlagSet

	address       NetAddress
	statusAddress NetAddress
	observerMode  string
	flags         StructuredConfig
}

// NewLoader registers every configuration flag on fs.
//
// Flags:
//
//	-a/--address          ledger address host:port
//	-r/--region           region id (0-255)
//	-p/--password         shared credential
//	--dial-timeout        TCP dial timeout (e.g. 3s)
//	--io-timeout          per read/write timeout (e.g. 5s)
//	-i/--interval         balance poll interval (e.g. 100ms)
//	--observer-mode       isolated|reuse
//	-d/--journal          transfer journal SQLite file
//	--status-address      status server host:port, empty disables it
//	--log-file            log file for the interactive desk
//	--log-level           zerolog level
//	--reject-negative     refuse negative transfer amounts
//	-c/--config           JSON or YAML config file path
func NewLoader(fs *pflag.FlagSet) *Loader {
	l := &Loader{fs: fs}
	f := &l.flags

	fs.VarP(&l.address, "address", "a", "Ledger address host:port")
	fs.Uint8VarP(&f.Adapter.Region, "region", "r", 0, "Region id to authenticate as")
	fs.StringVarP(&f.Adapter.Password, "password", "p", "", "Shared credential")
	fs.DurationVar(&f.Adapter.DialTimeout, "dial-timeout", 0, "TCP dial timeout (e.g., 3s)")
	fs.DurationVar(&f.Adapter.IOTimeout, "io-timeout", 0, "Per read/write timeout (e.g., 5s)")
	fs.DurationVarP(&f.Workers.BalanceInterval, "interval", "i", 0, "Balance poll interval (e.g., 100ms)")
	fs.StringVar(&l.observerMode, "observer-mode", "", "Observer session mode: isolated or reuse")
	fs.StringVarP(&f.Storage.JournalDSN, "journal", "d", "", "Transfer journal SQLite file")
	fs.Var(&l.statusAddress, "status-address", "Status server host:port")
	fs.StringVar(&f.Log.File, "log-file", "", "Log file for the interactive desk")
	fs.StringVar(&f.Log.Level, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&f.Policy.RejectNegative, "reject-negative", false, "Refuse negative transfer amounts")
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "JSON or YAML config file path")

	return l
}

// FlagSet returns the set the loader is bound to.
func (l *Loader) FlagSet() *pflag.FlagSet {
	return l.fs
}

// Load merges defaults, file, environment and the parsed flags, then
// validates the result.
func (l *Loader) Load() (*ClientConfig, error) {
	envCfg, err := parseEnv()
	if err != nil {
		return nil, err
	}

	flagCfg := l.parsed()

	cfg, err := newConfigBuilder().
		withDefaults().
		withFile(envCfg, flagCfg).
		with(envCfg).
		with(flagCfg).
		build()
	if err != nil {
		return nil, err
	}

	clientCfg := newClientConfig(cfg)
	if err := clientCfg.validate(); err != nil {
		return nil, err
	}

	return clientCfg, nil
}

func (l *Loader) parsed() *StructuredConfig {
	cfg := l.flags
	cfg.Adapter.Address = l.address.String()
	cfg.Status.Address = l.statusAddress.String()
	cfg.Workers.ObserverMode = l.observerMode
	return &cfg
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host is accepted and means all interfaces.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", rawPort, err)
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in 1..65535")
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
