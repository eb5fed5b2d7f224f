// ABOUTME: Entry point for the stashd key-value server
// ABOUTME: Bootstraps the admin user and serves the v1 HTTP API

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/stashbox/stashd/internal/config"
	"github.com/stashbox/stashd/internal/directory"
	"github.com/stashbox/stashd/internal/hash"
	"github.com/stashbox/stashd/internal/server"
	"github.com/stashbox/stashd/internal/store"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
      _             _         _
  ___| |_ __ _ ___| |__   __| |
 / __| __/ _' / __| '_ \ / _' |
 \__ \ || (_| \__ \ | | | (_| |
 |___/\__\__,_|___/_| |_|\__,_|
`

// getConfigPath returns the path to the stashd config file.
// Priority: STASHD_CONFIG env var > ./stashd.yaml
func getConfigPath() string {
	if envPath := os.Getenv("STASHD_CONFIG"); envPath != "" {
		return envPath
	}
	return "stashd.yaml"
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: stashd <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve     Start the key-value server")
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

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
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

	logger.Info("starting stashd",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
		"database", cfg.Database.Path,
	)

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	dir := directory.New(st, hash.New(cfg.Auth.Pepper, cfg.Auth.Salt))

	// Admin bootstrap must succeed before any traffic is served
	admin, err := dir.Bootstrap(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrapping admin: %w", err)
	}
	if admin != nil {
		// Tokens are random, so this is the only disclosure of the
		// bootstrap admin token. Store it now.
		yellow := color.New(color.FgYellow)
		yellow.Print("    ▶ ")
		fmt.Printf("Admin token (shown once): %s\n\n", admin.Token)
	}

	srv := server.New(cfg, dir, st, logger)
	return srv.Run(ctx)
}

// runHealth probes a running server's health endpoint.
func runHealth(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := "http://" + cfg.Server.HTTPAddr + "/health"
	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("reaching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: %s", resp.Status)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding health response: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ ")
	fmt.Printf("stashd healthy at %s (status: %s)\n", cfg.Server.HTTPAddr, body["status"])
	return nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
