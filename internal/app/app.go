package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ravikiranprk/pokedexter/internal/catalog"
	"github.com/ravikiranprk/pokedexter/internal/config"
	"github.com/ravikiranprk/pokedexter/internal/prefs"
	"github.com/ravikiranprk/pokedexter/internal/ui"
)

// Options configure the Pokedexter application. Non-empty fields override the
// config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/pokedexter/prefs.toml
	APIURL     string
	LogLevel   string
	Search     string // initial search; empty restores the last one
}

// LoadConfig reads the config file and applies command-line overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	return cfg, nil
}

// NewClient builds the catalog client described by cfg.
func NewClient(cfg config.Config, logger *slog.Logger) (*catalog.Client, error) {
	client, err := catalog.NewClient(catalog.Options{
		BaseURL:  cfg.APIURL,
		ListPath: cfg.ListPath,
		Timeout:  cfg.RequestTimeout,
		CacheTTL: cfg.CacheTTL,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init catalog client: %w", err)
	}
	return client, nil
}

// Run boots the Pokedexter TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file.
	logger, closeLog, err := OpenFileLogger(cfg.LogFile, ParseLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := NewClient(cfg, logger)
	if err != nil {
		return err
	}

	search := strings.TrimSpace(opts.Search)
	if search == "" {
		search = userPrefs.LastSearch
	}

	logger.Info("pokedexter starting",
		"api_url", client.BaseURL(),
		"page_size", cfg.PageSize,
		"cache_ttl", cfg.CacheTTL,
		"search", search,
	)

	uiOpts := ui.Options{
		Context:        ctx,
		Fetcher:        client,
		Logger:         logger,
		PageSize:       cfg.PageSize,
		RequestTimeout: cfg.RequestTimeout,
		InitialSearch:  search,
		ThemeName:      userPrefs.Theme,
		PrefsPath:      opts.PrefsPath,
	}
	if err := ui.Run(uiOpts); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("pokedexter stopped")
	return nil
}
