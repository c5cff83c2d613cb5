// Package main provides the pokedexter binary entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ravikiranprk/pokedexter/internal/app"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "pokedexter"
)

// globalFlags are shared by the TUI and every subcommand.
type globalFlags struct {
	configPath string
	prefsPath  string
	apiURL     string
	logLevel   string
}

func (g globalFlags) options() app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		PrefsPath:  g.prefsPath,
		APIURL:     g.apiURL,
		LogLevel:   g.logLevel,
	}
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	return 0
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   appName + " [search]",
		Short: "Browse the creature catalog in the terminal",
		Long: `Pokedexter browses a paginated creature catalog.

Without a subcommand it opens the interactive browser: type / to search,
scroll to load more, and press enter to flip a card for its details.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options()
			if len(args) == 1 {
				opts.Search = args[0]
			}
			return app.Run(cmd.Context(), opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Config file path (TOML)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "Preferences file path (TOML)")
	pf.StringVar(&flags.apiURL, "api-url", "", "Catalog API base URL (overrides config)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(searchCmd(&flags))
	cmd.AddCommand(showCmd(&flags))
	cmd.AddCommand(logsCmd(&flags))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}
