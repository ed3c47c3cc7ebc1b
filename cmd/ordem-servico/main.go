// ABOUTME: Entry point for the service-order management server
// ABOUTME: Serves the JSON API backed by the local data store

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/lucascruzestudo/ordem-servico-sistema/internal/api"
	"github.com/lucascruzestudo/ordem-servico-sistema/internal/config"
	"github.com/lucascruzestudo/ordem-servico-sistema/internal/gist"
	"github.com/lucascruzestudo/ordem-servico-sistema/internal/store"
)

// version is overridden at build time via -ldflags.
var version = "dev"

const banner = `
  ___  ____
 / _ \/ ___|     ___  _ __ __| | ___ _ __  ___
| | | \___ \    / _ \| '__/ _' |/ _ \ '_ \/ __|
| |_| |___) |  | (_) | | | (_| |  __/ | | \__ \
 \___/|____/    \___/|_|  \__,_|\___|_| |_|___/
`

// getConfigPath returns the path to the server config file.
// Priority: ORDEM_SERVICO_CONFIG env var > ./config.yaml
func getConfigPath() string {
	if envPath := os.Getenv("ORDEM_SERVICO_CONFIG"); envPath != "" {
		return envPath
	}
	return "config.yaml"
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: ordem-servico <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve     Start the API server")
		fmt.Println("  health    Check server health")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Database:  %s\n", cfg.Database.Path)
	fmt.Println()

	slot, err := store.NewSQLiteSlot(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening persistence slot: %w", err)
	}
	defer slot.Close()

	st := store.New(slot, logger)
	if err := st.Init(); err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}

	backup := gist.NewClient("", logger)

	mux := http.NewServeMux()
	api.New(st, backup, logger).RegisterRoutes(mux)

	server := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting ordem-servico server", "addr", cfg.Server.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// loadConfig reads the config file, falling back to defaults when it is
// absent so a bare `ordem-servico serve` works out of the box.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if filepath.Base(path) == path {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return config.Load(path)
}

func runHealth(ctx context.Context) error {
	cfg, err := loadConfig(getConfigPath())
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://%s/healthz", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}
