package knowledge

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"aegnt-unltd/pkg/log"
	"aegnt-unltd/pkg/qdrant"
	"aegnt-unltd/pkg/voyage"
)

// Store is the part of the qdrant client Ingest needs.
type Store interface {
	CollectionExists(ctx context.Context, name string) (bool, error)
	CreateCollection(ctx context.Context, req qdrant.CreateCollectionRequest) error
	UpsertPoints(ctx context.Context, collectionName string, req qdrant.UpsertPointsRequest) error
}

// IngestConfig controls a file-to-vector ingest run.
type IngestConfig struct {
	Collection string
	VectorSize int
	BatchSize  int
}

// pointNamespace seeds deterministic point ids so re-ingesting a passage
// overwrites it instead of duplicating it.
var pointNamespace = uuid.MustParse("6f1c9a52-3b7e-4d0a-9a51-2d7c0e8b4f10")

// Ingest embeds every passage from src and upserts it into the collection,
// creating the collection on first use. It returns the number of points
// written.
func Ingest(ctx context.Context, l log.Logger, src *FileRetriever, embedder voyage.IVoyage, store Store, cfg IngestConfig) (int, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}

	docs, err := src.Documents(ctx)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, fmt.Errorf("%w in %s", ErrNoDocuments, src.Location())
	}

	exists, err := store.CollectionExists(ctx, cfg.Collection)
	if err != nil {
		return 0, fmt.Errorf("check collection: %w", err)
	}
	if !exists {
		if err := store.CreateCollection(ctx, qdrant.CreateCollectionRequest{
			Name:    cfg.Collection,
			Vectors: qdrant.VectorConfig{Size: cfg.VectorSize, Distance: "Cosine"},
		}); err != nil {
			return 0, fmt.Errorf("create collection: %w", err)
		}
		l.Infof(ctx, "%s: created collection %s", LogPrefixIngest, cfg.Collection)
	}

	written := 0
	for start := 0; start < len(docs); start += cfg.BatchSize {
		end := min(start+cfg.BatchSize, len(docs))
		batch := docs[start:end]

		texts := make([]string, len(batch))
		for i, d := range batch {
			texts[i] = d.Text
		}
		vectors, err := embedder.Embed(ctx, texts, voyage.InputTypeDocument)
		if err != nil {
			return written, fmt.Errorf("embed batch at %d: %w", start, err)
		}

		points := make([]qdrant.Point, len(batch))
		for i, d := range batch {
			points[i] = qdrant.Point{
				ID:     PointID(d).String(),
				Vector: vectors[i],
				Payload: map[string]any{
					PayloadText:   d.Text,
					PayloadSource: d.Source,
				},
			}
		}
		if err := store.UpsertPoints(ctx, cfg.Collection, qdrant.UpsertPointsRequest{Points: points}); err != nil {
			return written, fmt.Errorf("upsert batch at %d: %w", start, err)
		}
		written += len(points)
		l.Debugf(ctx, "%s: upserted %d/%d", LogPrefixIngest, written, len(docs))
	}

	l.Infof(ctx, "%s: ingested %d passage(s) from %s", LogPrefixIngest, written, src.Location())
	return written, nil
}

// PointID is the stable id of a passage.
func PointID(p Passage) uuid.UUID {
	return uuid.NewSHA1(pointNamespace, []byte(p.Source+"\x00"+p.Text))
}
