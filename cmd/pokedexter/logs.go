package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ravikiranprk/pokedexter/internal/app"
	"github.com/ravikiranprk/pokedexter/internal/logtail"
)

type logsFlags struct {
	lines int
	level string
	raw   bool
}

func logsCmd(global *globalFlags) *cobra.Command {
	var flags logsFlags

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the end of the browser's log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(global.options())
			if err != nil {
				return err
			}
			if cfg.LogFile == "" {
				return fmt.Errorf("no log file configured")
			}

			lines, err := logtail.Read(cfg.LogFile, flags.lines)
			if err != nil {
				return err
			}
			if flags.level != "" {
				lines = logtail.Filter(lines, app.ParseLevel(flags.level))
			}
			if !flags.raw {
				lines = logtail.ColorizeLines(lines)
			}

			out := cmd.OutOrStdout()
			if len(lines) == 0 {
				fmt.Fprintf(out, "no log entries in %s\n", cfg.LogFile)
				return nil
			}
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&flags.lines, "lines", "n", 50, "Number of lines to show (0 for all)")
	cmd.Flags().StringVar(&flags.level, "level", "", "Only show records at or above this level")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Print the JSON records unformatted")
	return cmd
}

