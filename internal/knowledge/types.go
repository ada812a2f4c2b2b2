package knowledge

import "context"

// Passage is one retrievable chunk of knowledge.
type Passage struct {
	Source string  `json:"source"`
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
}

// Retriever looks up passages relevant to a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, limit int) ([]Passage, error)
	// Location names the backing resource for traces and logs.
	Location() string
}
