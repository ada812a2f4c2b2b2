package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	directiveHTTP "aegnt-unltd/internal/directive/delivery/http"
	"aegnt-unltd/internal/model"
)

func (srv *HTTPServer) mapHandlers() {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
}

func (srv *HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.mw.RequestID())

	ctx := context.Background()
	if srv.environment == model.EnvironmentProduction {
		srv.l.Infof(ctx, "HTTP mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP mode: %s", srv.environment)
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/", srv.rootCheck)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	if srv.metricsHandler != nil {
		srv.gin.GET("/metrics", gin.WrapH(srv.metricsHandler))
	}

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

func (srv *HTTPServer) registerDomainRoutes() {
	directiveHTTP.RegisterRoutes(srv.gin, srv.directiveHandler, srv.mw)
	srv.l.Infof(context.Background(), "Directive routes registered at POST /process and POST /system-prompt/reload")
}

// rootCheck answers liveness probes that only look at the status line.
// @Summary Root
// @Tags    Health
// @Produce plain
// @Success 200 {string} string "OK"
// @Router  / [get]
func (srv *HTTPServer) rootCheck(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
