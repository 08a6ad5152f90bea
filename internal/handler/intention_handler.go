package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bizcircle/portal/internal/service"
	"bizcircle/portal/pkg/response"
)

type IntentionHandler struct {
	intentions service.IntentionService
	logger     *zap.Logger
}

func NewIntentionHandler(intentions service.IntentionService, logger *zap.Logger) *IntentionHandler {
	return &IntentionHandler{intentions: intentions, logger: logger}
}

// Submit records a public request to join.
func (h *IntentionHandler) Submit(c *gin.Context) {
	var req service.SubmitIntentionInput
	if !bindJSON(c, &req) {
		return
	}

	intention, err := h.intentions.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "failed to submit intention")
		return
	}
	response.Created(c, intention)
}
