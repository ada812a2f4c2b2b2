package ollama

import (
	"errors"
	"net/http"
	"strings"
)

// Config configures the local model client.
type Config struct {
	BaseURL     string
	APIKey      string // ollama ignores it; other local servers may not
	Model       string
	MaxTokens   int
	Temperature float32
	HTTPClient  *http.Client
}

// Validate fills defaults and checks required fields.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.Model = ModelName(c.Model)
	if c.Model == "" {
		return errors.New("ollama: model is required")
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}

// ModelName strips the "ollama:" routing prefix from an identifier.
func ModelName(id string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(id), modelPrefix))
}
