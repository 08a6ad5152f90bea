package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bizcircle/portal/internal/handler/middleware"
	"bizcircle/portal/internal/service"
	jwtpkg "bizcircle/portal/pkg/jwt"
	"bizcircle/portal/pkg/response"
	"bizcircle/portal/pkg/validator"
)

var ErrNoClaims = errors.New("claims not found in context")

func memberClaims(c *gin.Context) (*jwtpkg.Claims, error) {
	claimsVal, exists := c.Get(middleware.ContextKeyMemberClaims)
	if !exists {
		return nil, ErrNoClaims
	}
	claims, ok := claimsVal.(*jwtpkg.Claims)
	if !ok {
		return nil, ErrNoClaims
	}
	return claims, nil
}

// sessionMemberID returns the member id of the authenticated session, answering 401
// when the context carries none.
func sessionMemberID(c *gin.Context) (uuid.UUID, bool) {
	claims, err := memberClaims(c)
	if err != nil {
		response.Unauthorized(c, "invalid session context")
		return uuid.Nil, false
	}
	id, err := claims.MemberID()
	if err != nil {
		response.Unauthorized(c, "invalid session context")
		return uuid.Nil, false
	}
	return id, true
}

// adminSecret returns the secret accepted by middleware.AdminAuth, or reads it from
// the request on routes mounted without that middleware.
func adminSecret(c *gin.Context) string {
	if secret := c.GetString(middleware.ContextKeyAdminSecret); secret != "" {
		return secret
	}
	return middleware.AdminSecret(c)
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.ValidationFailed(c, "invalid id", validator.Field(name, "uuid", "").Fields())
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service errors onto the response envelope. Anything outside
// the known taxonomy is logged and answered with a generic 500.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		response.ValidationFailed(c, "validation failed", verrs.Fields())
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(c, "unauthorized")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrReferralNotParty):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrIntentionEmailTaken),
		errors.Is(err, service.ErrMemberEmailTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrIntentionNotFound),
		errors.Is(err, service.ErrMemberNotFound),
		errors.Is(err, service.ErrReferralNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvitationTokenMissing),
		errors.Is(err, service.ErrInvitationNotFound),
		errors.Is(err, service.ErrInvitationUsed),
		errors.Is(err, service.ErrInvitationMismatch),
		errors.Is(err, service.ErrInvalidIntentionStatus),
		errors.Is(err, service.ErrInvalidReferralStatus),
		errors.Is(err, service.ErrSelfReferral),
		errors.Is(err, service.ErrReferralMemberUnknown):
		response.BadRequest(c, err.Error())
	default:
		logger.Error(fallback,
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.InternalError(c, fallback)
	}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}
