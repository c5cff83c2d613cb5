// Package config loads Pokedexter's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/pokedexter/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. POKEDEXTER_API_URL, when set, overrides api_url
//
// # Configuration Fields
//
//	api_url          catalog base URL        (https://pokeapi.co/api/v2)
//	list_path        list endpoint path      (/pokemon)
//	page_size        entries per page        (20, clamped to 1..200)
//	request_timeout  per-request timeout     (10s)
//	cache_ttl        short-lived cache TTL   (0, disabled)
//	log_file         JSON log destination    (~/.local/state/pokedexter/pokedexter.log)
//	log_level        debug|info|warn|error   (info)
//
// Paths beginning with "~" are expanded to the user's home directory.
// Unlike preferences, a malformed config file is reported as an error rather
// than silently ignored.
package config
