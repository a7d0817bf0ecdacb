// Command wander is a terminal client for the wander travel assistant.
//
// Usage:
//
//	WANDER_PASSWORD=... wander -email you@example.com [flags]
//	wander -guest [flags]
//
// Flags:
//
//	-backend-url string  Base URL of the travel backend (default: $WANDER_BACKEND_URL or http://localhost:8000)
//	-email string        Account email; logs in with $WANDER_PASSWORD
//	-guest               Enter as a guest; chat history is not saved
//	-log-level string    Log level: debug, info, warn, error (default warn)
//	-log-file string     Redirect logs to a file instead of stderr
//
// A .env file in the working directory is loaded when present.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/wanderapp/wander"
	bt "github.com/wanderapp/wander/bubbletea"
	"github.com/wanderapp/wander/logger"
	"github.com/wanderapp/wander/rest"
)

const defaultBackendURL = "http://localhost:8000"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "wander: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Local .env is optional.
	_ = godotenv.Load()

	var (
		backendURL = flag.String("backend-url", envOr("WANDER_BACKEND_URL", defaultBackendURL), "Base URL of the travel backend")
		email      = flag.String("email", os.Getenv("WANDER_EMAIL"), "Account email; logs in with $WANDER_PASSWORD")
		guest      = flag.Bool("guest", false, "Enter as a guest; chat history is not saved")
		logLevel   = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
		logFile    = flag.String("log-file", "", "Redirect logs to a file instead of stderr")
	)
	flag.Parse()

	if err := logger.Configure(*logLevel, *logFile); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	// Handle OS signals for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := rest.New(*backendURL)

	id, err := resolveIdentity(ctx, client, *email, os.Getenv("WANDER_PASSWORD"), *guest)
	if err != nil {
		return err
	}

	idctx := wander.NewContext()
	registry := wander.NewRegistry(client)
	orch := wander.NewOrchestrator(idctx, client, registry)
	orch.SetIdentity(id)
	if err := orch.Bootstrap(ctx); err != nil {
		return fmt.Errorf("start first chat: %w", err)
	}

	// No terminal speech capability; the mic control reports unsupported.
	m := bt.New(orch, nil, wander.DefaultTheme())
	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// resolveIdentity logs in with the given credentials, or enters as a guest
// when -guest is set or no email is configured.
func resolveIdentity(ctx context.Context, auth wander.Auth, email, password string, guest bool) (wander.Identity, error) {
	if guest || email == "" {
		id, err := auth.GuestEntry(ctx)
		if err != nil {
			return wander.Identity{}, fmt.Errorf("guest entry: %w", err)
		}
		return id, nil
	}
	if password == "" {
		return wander.Identity{}, fmt.Errorf("login as %s: WANDER_PASSWORD is not set", email)
	}
	id, err := auth.Login(ctx, email, password)
	if err != nil {
		return wander.Identity{}, fmt.Errorf("login: %w", err)
	}
	return id, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
