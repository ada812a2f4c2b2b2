package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aegnt-unltd/pkg/response"
)

// Process godoc
// @Summary     Process a directive
// @Description Classifies the directive and answers it on the fast or deep tier.
// @Tags        Directive
// @Accept      json
// @Produce     json
// @Param       body body processReq true "Directive"
// @Success     200  {object} processResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     429  {object} response.Resp "Too Many Requests"
// @Router      /process [POST]
func (h *handler) Process(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processProcessReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out := h.uc.ProcessDirective(ctx, *req.Input)
	c.JSON(http.StatusOK, h.newProcessResp(out))
}

// ReloadSystemPrompt godoc
// @Summary     Reload the system prompt
// @Description Re-reads the configured system prompt file. The previous prompt is kept on failure.
// @Tags        Directive
// @Produce     json
// @Success     200 {object} reloadResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /system-prompt/reload [POST]
func (h *handler) ReloadSystemPrompt(c *gin.Context) {
	ctx := c.Request.Context()

	if h.promptPath == "" {
		response.Error(c, errPromptNotConfigured, nil)
		return
	}

	if err := h.uc.LoadSystemPrompt(ctx, h.promptPath); err != nil {
		h.l.Warnf(ctx, "internal.directive.delivery.http.ReloadSystemPrompt: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, reloadResp{
		Path:  h.promptPath,
		Bytes: len(h.uc.SystemPrompt()),
	})
}
