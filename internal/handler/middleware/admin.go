package middleware

import (
	"github.com/gin-gonic/gin"

	"bizcircle/portal/pkg/response"
)

const (
	ContextKeyAdminSecret = "admin_secret"

	adminKeyHeader = "X-Admin-Key"
	adminKeyQuery  = "auth"
)

// AdminSecret extracts the caller's admin secret from the X-Admin-Key header,
// falling back to the auth query parameter.
func AdminSecret(c *gin.Context) string {
	if secret := c.GetHeader(adminKeyHeader); secret != "" {
		return secret
	}
	return c.Query(adminKeyQuery)
}

// AdminGate is satisfied by service.AdminGate.
type AdminGate interface {
	Verify(secret string) bool
}

// AdminAuth rejects requests whose admin secret does not match and stores the
// secret in the context for the services, which verify it again.
func AdminAuth(gate AdminGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := AdminSecret(c)
		if !gate.Verify(secret) {
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}
		c.Set(ContextKeyAdminSecret, secret)
		c.Next()
	}
}
