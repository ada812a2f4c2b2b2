package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"aegnt-unltd/internal/app"
)

var processCmd = &cobra.Command{
	Use:   "process [directive]",
	Short: "Dispatch a directive in-process and print the JSON response",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		core, err := app.New(ctx, cfg, logger)
		if err != nil {
			return err
		}
		if err := core.Brain.LoadSystemPrompt(ctx, cfg.Brain.SystemPromptPath); err != nil {
			logger.Warnf(ctx, "System prompt not loaded, continuing with empty prompt: %v", err)
		}

		resp := core.Brain.ProcessDirective(ctx, strings.Join(args, " "))

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}
