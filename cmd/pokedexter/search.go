package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ravikiranprk/pokedexter/internal/app"
	"github.com/ravikiranprk/pokedexter/internal/card"
	"github.com/ravikiranprk/pokedexter/internal/catalog"
	"github.com/ravikiranprk/pokedexter/internal/listing"
)

type searchFlags struct {
	pages   int
	all     bool
	retries int
}

func searchCmd(global *globalFlags) *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search [filter]",
		Short: "List matching entries without the interactive browser",
		Long: `Search runs the same paging logic as the browser and prints one line
per entry. By default it stops after the first page.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			cfg, err := app.LoadConfig(global.options())
			if err != nil {
				return err
			}
			logger := app.NewStderrLogger(app.ParseLevel(cfg.LogLevel))
			client, err := app.NewClient(cfg, logger)
			if err != nil {
				return err
			}
			ctrl := listing.New(cfg.PageSize)
			snap, err := collect(cmd.Context(), ctrl, client, filter, flags, logger)
			printSearch(cmd.OutOrStdout(), snap)
			return err
		},
	}

	cmd.Flags().IntVarP(&flags.pages, "pages", "n", 1, "Number of pages to fetch")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Fetch every page")
	cmd.Flags().IntVar(&flags.retries, "retries", 0, "Retries per failed page")
	return cmd
}

// collect drives ctrl until the page budget is spent, the list is exhausted
// or a page fails more than flags.retries times in a row.
func collect(ctx context.Context, ctrl *listing.Controller, f catalog.Fetcher, filter string, flags searchFlags, logger *slog.Logger) (listing.Snapshot, error) {
	req := ctrl.Start(filter)
	failures := 0
	for req != nil {
		res := listing.Fetch(ctx, f, *req)
		ctrl.Apply(res)

		switch ctrl.State() {
		case listing.Error:
			failures++
			if failures > flags.retries {
				snap := ctrl.Snapshot()
				return snap, fmt.Errorf("fetch %s: %w", req.Cursor, snap.Err)
			}
			logger.Warn("page failed, retrying",
				"cursor", req.Cursor.String(),
				"kind", catalog.Kind(res.Err),
				"attempt", failures,
			)
			req = ctrl.Retry()
		case listing.Ready:
			failures = 0
			if !flags.all && ctrl.Snapshot().Pages >= flags.pages {
				req = nil
				continue
			}
			req = ctrl.NearBottom()
		default:
			req = nil
		}
	}
	return ctrl.Snapshot(), nil
}

func printSearch(w io.Writer, snap listing.Snapshot) {
	number := color.New(color.FgHiBlack)
	name := color.New(color.FgCyan, color.Bold)
	muted := color.New(color.Faint)

	for _, item := range snap.Items {
		number.Fprint(w, card.New(item).Label())
		fmt.Fprint(w, "  ")
		name.Fprintln(w, item.Name)
	}

	pages := "pages"
	if snap.Pages == 1 {
		pages = "page"
	}
	summary := fmt.Sprintf("%d shown, %d %s", len(snap.Items), snap.Pages, pages)
	if snap.Total > 0 {
		summary = fmt.Sprintf("%d shown of %d, %d %s", len(snap.Items), snap.Total, snap.Pages, pages)
	}
	switch {
	case snap.State == listing.Error:
		summary += ", stopped on error"
	case snap.HasMore():
		summary += ", more available (use --pages or --all)"
	default:
		summary += ", end of results"
	}
	muted.Fprintln(w, summary)
}
