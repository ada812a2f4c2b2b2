// Command aegnt classifies and dispatches directives from the shell and
// loads knowledge into the vector store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"aegnt-unltd/config"
	"aegnt-unltd/pkg/log"
)

var (
	cfg    *config.Config
	logger log.Logger

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "aegnt",
	Short: "aegnt directive router CLI",
	Long: `aegnt classifies natural-language directives and routes them to the
cortex (fast) or deep_mind (deep) tier, using the same configuration as the
HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		level := "warn"
		if verbose {
			level = "debug"
		}
		logger = log.Init(log.ZapConfig{
			Level:    level,
			Mode:     "development",
			Encoding: "console",
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(ingestCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
