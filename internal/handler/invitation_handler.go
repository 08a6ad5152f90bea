package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bizcircle/portal/internal/service"
	"bizcircle/portal/pkg/response"
)

type InvitationHandler struct {
	invitations service.InvitationService
	logger      *zap.Logger
}

func NewInvitationHandler(invitations service.InvitationService, logger *zap.Logger) *InvitationHandler {
	return &InvitationHandler{invitations: invitations, logger: logger}
}

// Validate answers 200 for every token outcome; only a missing token is a 400.
func (h *InvitationHandler) Validate(c *gin.Context) {
	res, err := h.invitations.Validate(c.Request.Context(), c.Query("token"), c.Query("id"))
	if err != nil {
		respondError(c, h.logger, err, "failed to validate invitation")
		return
	}
	response.Success(c, res)
}

func (h *InvitationHandler) Register(c *gin.Context) {
	var req service.RegisterInput
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.invitations.Consume(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "registration failed")
		return
	}
	response.Success(c, gin.H{"member_id": member.ID})
}
