package http

import (
	"github.com/gin-gonic/gin"

	"aegnt-unltd/internal/brain"
	"aegnt-unltd/pkg/log"
)

// Handler is the HTTP delivery of the directive dispatcher.
type Handler interface {
	Process(c *gin.Context)
	ReloadSystemPrompt(c *gin.Context)
}

type handler struct {
	l          log.Logger
	uc         brain.Dispatcher
	promptPath string
}

// New creates a directive handler. promptPath is the file re-read by the
// reload endpoint.
func New(l log.Logger, uc brain.Dispatcher, promptPath string) Handler {
	return &handler{
		l:          l,
		uc:         uc,
		promptPath: promptPath,
	}
}
