// Package app provides the orchestration layer for the Pokedexter application.
//
// # Overview
//
// This package wires together configuration, preferences, logging, the
// catalog client and the UI. It is the composition root for the TUI and
// supplies the shared pieces (LoadConfig, NewClient, loggers) that the
// non-interactive subcommands reuse.
//
// # Startup
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> LoadConfig()        config file + flag overrides
//	       ├─────> OpenFileLogger()    JSON log file (the TUI owns stdout/stderr)
//	       ├─────> prefs.Load()        theme and last search
//	       ├─────> NewClient()         catalog HTTP client
//	       └─────> ui.Run()            Start TUI (blocks)
//
// # Initial Search
//
// An explicit search option wins; otherwise the last submitted search from
// prefs is restored, and an empty one lists the whole catalog.
package app
