package gemini

import "context"

// IGemini generates slow-model plans with Gemini. Thought parts emitted by
// thinking models are dropped, so Response.Content holds only the answer.
// Safe for concurrent use.
type IGemini interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Model() string
}

var _ IGemini = (*geminiImpl)(nil)

// New validates cfg, filling the thinking-model defaults, and returns a
// client.
func New(cfg Config) (IGemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGeminiImpl(cfg), nil
}
