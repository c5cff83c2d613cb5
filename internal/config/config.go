package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures Pokedexter's runtime settings.
type Config struct {
	APIURL         string
	ListPath       string
	PageSize       int
	RequestTimeout time.Duration
	CacheTTL       time.Duration
	LogFile        string
	LogLevel       string
}

const (
	defaultConfigPath     = "~/.config/pokedexter/config.toml"
	defaultAPIURL         = "https://pokeapi.co/api/v2"
	defaultListPath       = "/pokemon"
	defaultPageSize       = 20
	maxPageSize           = 200
	defaultRequestTimeout = 10 * time.Second
	defaultLogFile        = "~/.local/state/pokedexter/pokedexter.log"
	defaultLogLevel       = "info"

	// APIURLEnv overrides api_url from the file.
	APIURLEnv = "POKEDEXTER_API_URL"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		ListPath:       defaultListPath,
		PageSize:       defaultPageSize,
		RequestTimeout: defaultRequestTimeout,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
	}
}

// Load locates and parses the config file, falling back to defaults when it is
// missing. A file that exists but cannot be parsed is an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		var file fileConfig
		if err := toml.Unmarshal(data, &file); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		if err := file.apply(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// fileConfig mirrors the TOML keys. Empty values keep the defaults.
type fileConfig struct {
	APIURL         string `toml:"api_url"`
	ListPath       string `toml:"list_path"`
	PageSize       int    `toml:"page_size"`
	RequestTimeout string `toml:"request_timeout"`
	CacheTTL       string `toml:"cache_ttl"`
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
}

func (f fileConfig) apply(cfg *Config) error {
	if v := strings.TrimSpace(f.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(f.ListPath); v != "" {
		cfg.ListPath = v
	}
	if f.PageSize != 0 {
		cfg.PageSize = clampPageSize(f.PageSize)
	}
	if v := strings.TrimSpace(f.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid request_timeout %q", v)
		}
		cfg.RequestTimeout = d
	}
	if v := strings.TrimSpace(f.CacheTTL); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid cache_ttl %q", v)
		}
		cfg.CacheTTL = d
	}
	if v := strings.TrimSpace(f.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(f.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(APIURLEnv)); v != "" {
		cfg.APIURL = v
	}
}

func clampPageSize(n int) int {
	switch {
	case n < 1:
		return 1
	case n > maxPageSize:
		return maxPageSize
	default:
		return n
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return "", errors.New("empty path")
	}
	if rest, ok := strings.CutPrefix(p, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		p = filepath.Join(home, rest)
	}
	return filepath.Abs(p)
}
