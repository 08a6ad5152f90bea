package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bizcircle/portal/internal/model"
	"bizcircle/portal/internal/service"
	"bizcircle/portal/pkg/response"
)

type AdminHandler struct {
	gate        service.AdminGate
	intentions  service.IntentionService
	invitations service.InvitationService
	members     service.MemberService
	logger      *zap.Logger
}

func NewAdminHandler(
	gate service.AdminGate,
	intentions service.IntentionService,
	invitations service.InvitationService,
	members service.MemberService,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		gate:        gate,
		intentions:  intentions,
		invitations: invitations,
		members:     members,
		logger:      logger,
	}
}

type VerifyAdminRequest struct {
	Secret string `json:"senha"`
}

type TransitionIntentionRequest struct {
	Status string `json:"status" binding:"required"`
}

type GenerateInvitationRequest struct {
	IntentionID uuid.UUID `json:"intencao_id" binding:"required"`
}

type invitationResponse struct {
	ID    uuid.UUID `json:"id"`
	Token string    `json:"token"`
	URL   string    `json:"url"`
}

type transitionResponse struct {
	*model.Intention
	Invitation *invitationResponse `json:"convite,omitempty"`
}

func toInvitationResponse(issued *service.IssuedInvitation) *invitationResponse {
	if issued == nil {
		return nil
	}
	return &invitationResponse{
		ID:    issued.Invitation.ID,
		Token: issued.Invitation.Token,
		URL:   issued.URL,
	}
}

// Verify checks an admin secret so the front end can unlock the admin area.
func (h *AdminHandler) Verify(c *gin.Context) {
	var req VerifyAdminRequest
	if !bindJSON(c, &req) {
		return
	}
	if !h.gate.Verify(req.Secret) {
		response.Unauthorized(c, "unauthorized")
		return
	}
	response.Success(c, gin.H{"valid": true})
}

func (h *AdminHandler) ListIntentions(c *gin.Context) {
	intentions, err := h.intentions.List(c.Request.Context(), adminSecret(c))
	if err != nil {
		respondError(c, h.logger, err, "failed to list intentions")
		return
	}
	response.Success(c, intentions)
}

func (h *AdminHandler) TransitionIntention(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req TransitionIntentionRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.intentions.Transition(c.Request.Context(), id, model.IntentionStatus(req.Status), adminSecret(c))
	if err != nil {
		respondError(c, h.logger, err, "failed to update intention")
		return
	}
	response.Success(c, transitionResponse{
		Intention:  res.Intention,
		Invitation: toInvitationResponse(res.Invitation),
	})
}

func (h *AdminHandler) GenerateInvitation(c *gin.Context) {
	var req GenerateInvitationRequest
	if !bindJSON(c, &req) {
		return
	}

	issued, err := h.invitations.Generate(c.Request.Context(), req.IntentionID, adminSecret(c))
	if err != nil {
		respondError(c, h.logger, err, "failed to generate invitation")
		return
	}
	response.Success(c, toInvitationResponse(issued))
}

func (h *AdminHandler) DeleteMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.members.Delete(c.Request.Context(), id, adminSecret(c)); err != nil {
		respondError(c, h.logger, err, "failed to delete member")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
