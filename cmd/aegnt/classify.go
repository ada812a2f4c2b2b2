package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aegnt-unltd/internal/router"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [directive]",
	Short: "Print the intent of a directive and the rule that decided it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rr := router.New(router.Rules{
			StrategyKeywords:     cfg.Router.StrategyKeywords,
			InterrogativeMarkers: cfg.Router.InterrogativeMarkers,
			ShortInputThreshold:  cfg.Router.ShortInputThreshold,
		})

		d := rr.Explain(strings.Join(args, " "))
		out := cmd.OutOrStdout()
		if d.Matched != "" {
			_, err := fmt.Fprintf(out, "%s\t%s (%q)\n", d.Intent, d.Rule, d.Matched)
			return err
		}
		_, err := fmt.Fprintf(out, "%s\t%s\n", d.Intent, d.Rule)
		return err
	},
}
