// Package main runs a local stand-in for the catalog API, serving fixture
// data from SQLite.
//
// Usage:
//
//	pokedexter-mock --addr 127.0.0.1:8089 --fail-every 5
//	POKEDEXTER_API_URL=http://127.0.0.1:8089/api/v2 pokedexter
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/ravikiranprk/pokedexter/internal/app"
	"github.com/ravikiranprk/pokedexter/internal/mockcatalog"
)

type options struct {
	addr      string
	dbPath    string
	failEvery int
	logLevel  string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pokedexter-mock: %v\n", err)
		return 2
	}

	logger := app.NewStderrLogger(app.ParseLevel(opts.logLevel))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := serve(ctx, opts, logger); err != nil {
		logger.Error("mock catalog failed", "error", err)
		return 1
	}
	return 0
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("pokedexter-mock", pflag.ContinueOnError)
	fs.StringVar(&opts.addr, "addr", getEnv("POKEDEXTER_MOCK_ADDR", "127.0.0.1:8089"), "Listen address")
	fs.StringVar(&opts.dbPath, "db", ":memory:", "SQLite database path (:memory: keeps it in memory)")
	fs.IntVar(&opts.failEvery, "fail-every", 0, "Fail every Nth list request with 503 (0 disables)")
	fs.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.failEvery < 0 {
		return options{}, fmt.Errorf("--fail-every must not be negative")
	}
	return opts, nil
}

func serve(ctx context.Context, opts options, logger *slog.Logger) error {
	store, err := mockcatalog.Open(opts.dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	entries, err := mockcatalog.Fixtures()
	if err != nil {
		return err
	}
	if err := store.Seed(ctx, entries); err != nil {
		return fmt.Errorf("seed store: %w", err)
	}
	logger.Info("fixtures loaded", "entries", len(entries), "db", opts.dbPath)

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", opts.addr, err)
	}

	srv := mockcatalog.New(store, mockcatalog.Options{FailEvery: opts.failEvery, Logger: logger})
	return mockcatalog.Serve(ctx, ln, srv, logger)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
