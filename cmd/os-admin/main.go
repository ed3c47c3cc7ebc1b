// ABOUTME: Operator CLI for the service-order system
// ABOUTME: Export, import, reset, audit inspection and remote backup commands

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lucascruzestudo/ordem-servico-sistema/internal/config"
	"github.com/lucascruzestudo/ordem-servico-sistema/internal/store"
)

// rootOptions holds global flags shared by all commands.
type rootOptions struct {
	ConfigPath string
	DBPath     string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "os-admin",
		Short:         "Administra o sistema de ordens de serviço",
		Long:          "Operator tooling for the service-order system: dataset export/import, seed reset, audit inspection and remote backup.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default: $ORDEM_SERVICO_CONFIG or config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to the database file (overrides config)")

	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newImportCommand(opts))
	cmd.AddCommand(newResetCommand(opts))
	cmd.AddCommand(newAuditCommand(opts))
	cmd.AddCommand(newBackupCommand(opts))

	return cmd
}

// loadConfig resolves the configuration for a command invocation.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	path := o.ConfigPath
	if path == "" {
		path = os.Getenv("ORDEM_SERVICO_CONFIG")
	}
	if path == "" {
		path = "config.yaml"
	}

	var cfg *config.Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg = config.Default()
	} else {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if o.DBPath != "" {
		cfg.Database.Path = o.DBPath
	}
	return cfg, nil
}

// openStore opens the persistence slot and initializes a store over it.
// The returned closer releases the database.
func (o *rootOptions) openStore() (*store.Store, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	// quiet logger: admin commands print their own output
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	slot, err := store.NewSQLiteSlot(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening persistence slot: %w", err)
	}

	st := store.New(slot, logger)
	if err := st.Init(); err != nil {
		slot.Close()
		return nil, nil, fmt.Errorf("initializing store: %w", err)
	}

	return st, func() { slot.Close() }, nil
}
