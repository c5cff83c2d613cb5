package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ravikiranprk/pokedexter/internal/app"
	"github.com/ravikiranprk/pokedexter/internal/card"
	"github.com/ravikiranprk/pokedexter/internal/catalog"
)

func showCmd(global *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name|url>",
		Short: "Print the back of one card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(global.options())
			if err != nil {
				return err
			}
			logger := app.NewStderrLogger(app.ParseLevel(cfg.LogLevel))
			client, err := app.NewClient(cfg, logger)
			if err != nil {
				return err
			}

			ref := detailRef(args[0], cfg.ListPath)
			c := card.New(ref)
			c.Mount()
			detail, err := client.FetchDetail(cmd.Context(), ref.URL)
			c.Resolve(detail, err)
			printCard(cmd.OutOrStdout(), c)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", ref.Name, err)
			}
			return nil
		},
	}
}

// detailRef turns a name into a detail reference under listPath. Anything
// containing a slash is taken as a URL as-is.
func detailRef(arg, listPath string) catalog.EntityRef {
	arg = strings.TrimSpace(arg)
	if strings.Contains(arg, "/") {
		trimmed := strings.TrimSuffix(arg, "/")
		return catalog.EntityRef{Name: trimmed[strings.LastIndex(trimmed, "/")+1:], URL: arg}
	}
	name := strings.ToLower(arg)
	return catalog.EntityRef{
		Name: name,
		URL:  strings.TrimSuffix(listPath, "/") + "/" + name + "/",
	}
}

func printCard(w io.Writer, c *card.Card) {
	title := color.New(color.FgYellow, color.Bold)
	label := color.New(color.FgHiBlack)
	warn := color.New(color.FgRed)

	if c.Number() != "" {
		label.Fprint(w, c.Label()+"  ")
	}
	title.Fprintln(w, c.Ref.Name)

	if c.Status() == card.DetailUnavailable {
		warn.Fprintf(w, "details unavailable (%s)\n", catalog.Kind(c.Err()))
		return
	}
	if types := c.Types(); len(types) > 0 {
		fmt.Fprintf(w, "%s %s\n", label.Sprint("Types:    "), strings.Join(types, ", "))
	}
	if h := c.Height(); h != "" {
		fmt.Fprintf(w, "%s %s\n", label.Sprint("Height:   "), h)
	}
	if wt := c.Weight(); wt != "" {
		fmt.Fprintf(w, "%s %s\n", label.Sprint("Weight:   "), wt)
	}
	if abilities := c.Abilities(); len(abilities) > 0 {
		fmt.Fprintf(w, "%s %s\n", label.Sprint("Abilities:"), strings.Join(abilities, ", "))
	}
}
