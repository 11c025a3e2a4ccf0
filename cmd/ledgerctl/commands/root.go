// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package commands implements ledgerctl, the scriptable ledger client.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MKhiriev/go-ledger-desk/internal/adapter"
	"github.com/MKhiriev/go-ledger-desk/internal/config"
	"github.com/MKhiriev/go-ledger-desk/internal/logger"
	"github.com/MKhiriev/go-ledger-desk/internal/service"
	"github.com/MKhiriev/go-ledger-desk/internal/store"
	"github.com/MKhiriev/go-ledger-desk/models"
)

const skipLogin = "skip-login"

var (
	buildInfo = models.NewAppBuildInfo("", "", "")

	ErrPasswordRequired = errors.New("password required: use --password, LEDGER_ADAPTER_PASSWORD or a terminal")
)

// SetBuildInfo records the linker-provided build metadata for `version`.
func SetBuildInfo(version, date, commit string) {
	buildInfo = models.NewAppBuildInfo(version, date, commit)
}

// cli carries what PersistentPreRunE builds for the subcommands.
type cli struct {
	loader   *config.Loader
	cfg      *config.ClientConfig
	log      *logger.Logger
	storages *store.ClientStorages
	services *service.ClientServices

	promptPassword func(cmd *cobra.Command) (string, error)
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := &cli{promptPassword: promptTerminalPassword}
	return c.execute(ctx, newRootCommand(c))
}

// NewRootCommand builds the ledgerctl command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&cli{promptPassword: promptTerminalPassword})
}

// execute runs root and releases the session and the journal afterwards,
// also when the command failed.
func (c *cli) execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if tdErr := c.teardown(); err == nil {
		err = tdErr
	}
	return err
}

func newRootCommand(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:          "ledgerctl",
		Short:        "Scriptable client for the regional ledger",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipLogin] == "offline" {
				return nil
			}
			return c.setup(cmd)
		},
	}

	c.loader = config.NewLoader(root.PersistentFlags())

	root.AddCommand(
		balanceCmd(c),
		transferCmd(c),
		burstCmd(c),
		historyCmd(c),
		versionCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := c.loader.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logger.NewConsoleLogger("ledgerctl", cfg.Log.Level, cmd.ErrOrStderr())

	serverAdapter, err := adapter.NewTCPServerAdapter(cfg.Adapter, nil, c.log)
	if err != nil {
		return err
	}

	c.storages, err = store.NewClientStorages(cmd.Context(), cfg.Storage, c.log)
	if err != nil {
		return err
	}
	c.services = service.NewClientServices(c.storages, serverAdapter, cfg, c.log)

	if cmd.Annotations[skipLogin] == "journal" {
		return nil
	}

	password := cfg.Adapter.Password
	if password == "" {
		if password, err = c.promptPassword(cmd); err != nil {
			return err
		}
	}

	return c.services.Ledger.Login(cmd.Context(), password)
}

func (c *cli) teardown() error {
	if c.services != nil {
		_ = c.services.Ledger.Close()
		c.services = nil
	}
	err := c.storages.Close()
	c.storages = nil
	return err
}

func promptTerminalPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrPasswordRequired
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(raw) == 0 {
		return "", ErrPasswordRequired
	}
	return string(raw), nil
}
