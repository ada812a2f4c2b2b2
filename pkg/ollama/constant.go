package ollama

import "time"

const (
	// DefaultBaseURL is ollama's OpenAI-compatible endpoint.
	DefaultBaseURL = "http://localhost:11434/v1"

	// DefaultModel is used when the configured identifier is empty.
	DefaultModel = "llama3"

	// DefaultTimeout caps a single HTTP round trip.
	DefaultTimeout = 10 * time.Second

	// modelPrefix is stripped from identifiers such as "ollama:llama3".
	modelPrefix = "ollama:"
)
