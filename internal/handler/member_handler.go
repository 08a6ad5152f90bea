package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bizcircle/portal/internal/service"
	"bizcircle/portal/pkg/response"
)

type MemberHandler struct {
	members service.MemberService
	logger  *zap.Logger
}

func NewMemberHandler(members service.MemberService, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{members: members, logger: logger}
}

func (h *MemberHandler) Login(c *gin.Context) {
	var req service.LoginInput
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.members.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "login failed")
		return
	}
	response.Success(c, res)
}

func (h *MemberHandler) Logout(c *gin.Context) {
	claims, err := memberClaims(c)
	if err != nil {
		response.Unauthorized(c, "invalid session context")
		return
	}
	if err := h.members.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, h.logger, err, "logout failed")
		return
	}
	response.Success(c, nil)
}

func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.members.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "failed to list members")
		return
	}
	response.Success(c, members)
}
