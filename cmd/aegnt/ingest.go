package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"aegnt-unltd/internal/app"
	"aegnt-unltd/internal/knowledge"
)

var (
	ingestPath      string
	ingestBatchSize int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Embed the knowledge directory with Voyage and upsert it into Qdrant",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		path := ingestPath
		if path == "" {
			path = cfg.Brain.KnowledgePath
		}

		embedder, store, err := app.VectorClients(cfg)
		if err != nil {
			return err
		}

		n, err := knowledge.Ingest(ctx, logger, knowledge.NewFileRetriever(path), embedder, store, knowledge.IngestConfig{
			Collection: cfg.Qdrant.CollectionName,
			VectorSize: cfg.Qdrant.VectorSize,
			BatchSize:  ingestBatchSize,
		})
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "ingested %d passage(s) from %s into %s\n", n, path, cfg.Qdrant.CollectionName)
		return err
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestPath, "path", "", "knowledge directory (defaults to brain.knowledge_path)")
	ingestCmd.Flags().IntVar(&ingestBatchSize, "batch-size", 0, "passages per embedding call")
}
