package knowledge

import (
	"context"
	"fmt"

	"aegnt-unltd/pkg/qdrant"
	"aegnt-unltd/pkg/voyage"
)

// Searcher is the part of the qdrant client VectorRetriever needs.
type Searcher interface {
	SearchPoints(ctx context.Context, collectionName string, req qdrant.SearchRequest) (*qdrant.SearchResponse, error)
}

// VectorRetriever embeds the query with Voyage and searches a Qdrant
// collection populated by Ingest.
type VectorRetriever struct {
	embedder   voyage.IVoyage
	store      Searcher
	collection string
	minScore   float64
}

var _ Retriever = (*VectorRetriever)(nil)

// NewVectorRetriever creates a vector-backed retriever.
func NewVectorRetriever(embedder voyage.IVoyage, store Searcher, collection string, minScore float64) *VectorRetriever {
	return &VectorRetriever{
		embedder:   embedder,
		store:      store,
		collection: collection,
		minScore:   minScore,
	}
}

// Location returns "qdrant:<collection>".
func (r *VectorRetriever) Location() string {
	return "qdrant:" + r.collection
}

// Retrieve returns the nearest passages. Embedding and search failures are
// ErrUnavailable.
func (r *VectorRetriever) Retrieve(ctx context.Context, query string, limit int) ([]Passage, error) {
	if limit <= 0 {
		limit = DefaultMaxPassages
	}

	vectors, err := r.embedder.Embed(ctx, []string{query}, voyage.InputTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", ErrUnavailable, err)
	}

	resp, err := r.store.SearchPoints(ctx, r.collection, qdrant.SearchRequest{
		Vector:         vectors[0],
		Limit:          limit,
		WithPayload:    true,
		ScoreThreshold: r.minScore,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: search %s: %v", ErrUnavailable, r.collection, err)
	}

	out := make([]Passage, 0, len(resp.Result))
	for _, p := range resp.Result {
		text := p.PayloadString(PayloadText)
		if text == "" {
			continue
		}
		source := p.PayloadString(PayloadSource)
		if source == "" {
			source = p.IDString()
		}
		out = append(out, Passage{Source: source, Text: text, Score: p.Score})
	}
	return out, nil
}
