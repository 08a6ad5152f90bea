package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bizcircle/portal/internal/model"
	"bizcircle/portal/internal/service"
	"bizcircle/portal/pkg/response"
)

type ReferralHandler struct {
	referrals service.ReferralService
	logger    *zap.Logger
}

func NewReferralHandler(referrals service.ReferralService, logger *zap.Logger) *ReferralHandler {
	return &ReferralHandler{referrals: referrals, logger: logger}
}

type UpdateReferralStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create records a referral sent by the session's member.
func (h *ReferralHandler) Create(c *gin.Context) {
	actorID, ok := sessionMemberID(c)
	if !ok {
		return
	}
	var req service.CreateReferralInput
	if !bindJSON(c, &req) {
		return
	}

	referral, err := h.referrals.Create(c.Request.Context(), actorID, req)
	if err != nil {
		respondError(c, h.logger, err, "failed to create referral")
		return
	}
	response.Created(c, referral)
}

// List returns the referrals sent and received by ?member_id=, defaulting to the
// session's member.
func (h *ReferralHandler) List(c *gin.Context) {
	memberID := c.Query("member_id")
	if memberID == "" {
		if claims, err := memberClaims(c); err == nil {
			if id, err := claims.MemberID(); err == nil {
				memberID = id.String()
			}
		}
	}

	list, err := h.referrals.ListFor(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, h.logger, err, "failed to list referrals")
		return
	}
	response.Success(c, list)
}

func (h *ReferralHandler) UpdateStatus(c *gin.Context) {
	actorID, ok := sessionMemberID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateReferralStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	referral, err := h.referrals.UpdateStatus(c.Request.Context(), actorID, id, model.ReferralStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, err, "failed to update referral")
		return
	}
	response.Success(c, referral)
}
