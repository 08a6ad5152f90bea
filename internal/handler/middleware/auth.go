package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	jwtpkg "bizcircle/portal/pkg/jwt"
	"bizcircle/portal/pkg/response"
)

const ContextKeyMemberClaims = "member_claims"

// SessionAuthenticator validates a session token, including revocation.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*jwtpkg.Claims, error)
}

func MemberAuth(sessions SessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization format")
			c.Abort()
			return
		}

		claims, err := sessions.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired session")
			c.Abort()
			return
		}

		c.Set(ContextKeyMemberClaims, claims)
		c.Next()
	}
}
