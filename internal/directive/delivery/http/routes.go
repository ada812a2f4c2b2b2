package http

import (
	"github.com/gin-gonic/gin"

	"aegnt-unltd/internal/middleware"
)

// RegisterRoutes mounts the directive endpoints on r.
func RegisterRoutes(r gin.IRouter, h Handler, mw middleware.Middleware) {
	r.POST("/process", mw.RateLimit(), h.Process)
	r.POST("/system-prompt/reload", h.ReloadSystemPrompt)
}
