package qdrant

import "fmt"

// CreateCollectionRequest defines the schema for creating a collection.
type CreateCollectionRequest struct {
	Name    string       `json:"-"` // in URL
	Vectors VectorConfig `json:"vectors"`
}

// VectorConfig defines vector dimension and distance metric.
type VectorConfig struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"` // "Cosine", "Euclid", "Dot"
}

// Point is a vector with payload. Qdrant only accepts UUIDs or unsigned
// integers as ids.
type Point struct {
	ID      any            `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// UpsertPointsRequest is the request to insert/update points.
type UpsertPointsRequest struct {
	Points []Point `json:"points"`
}

// SearchRequest is the request for semantic search.
type SearchRequest struct {
	Vector         []float32      `json:"vector"`
	Limit          int            `json:"limit"`
	WithPayload    bool           `json:"with_payload"`
	ScoreThreshold float64        `json:"score_threshold,omitempty"`
	Filter         map[string]any `json:"filter,omitempty"`
}

// SearchResponse contains search results.
type SearchResponse struct {
	Result []ScoredPoint `json:"result"`
}

// ScoredPoint is a search hit. ID is a string or a number depending on how
// the point was written.
type ScoredPoint struct {
	ID      any            `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

// IDString renders the point id regardless of its JSON type.
func (p ScoredPoint) IDString() string {
	switch v := p.ID.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// PayloadString returns payload[key] when it is a string.
func (p ScoredPoint) PayloadString(key string) string {
	if s, ok := p.Payload[key].(string); ok {
		return s
	}
	return ""
}

type existsResponse struct {
	Result struct {
		Exists bool `json:"exists"`
	} `json:"result"`
}

// ErrorResponse is Qdrant's error body.
type ErrorResponse struct {
	Status struct {
		Error string `json:"error"`
	} `json:"status"`
}
