package http

import (
	"github.com/gin-gonic/gin"
)

func (h *handler) processProcessReq(c *gin.Context) (processReq, error) {
	var req processReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(c.Request.Context(), "internal.directive.delivery.http.processProcessReq: %v", err)
		return req, err
	}

	if err := req.validate(); err != nil {
		return req, err
	}

	return req, nil
}
