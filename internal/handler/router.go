package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bizcircle/portal/internal/config"
	"bizcircle/portal/internal/handler/middleware"
	"bizcircle/portal/internal/service"
)

type Handlers struct {
	Admin       *AdminHandler
	Intentions  *IntentionHandler
	Invitations *InvitationHandler
	Members     *MemberHandler
	Referrals   *ReferralHandler
}

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	gate service.AdminGate,
	sessions middleware.SessionAuthenticator,
	h Handlers,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// Public routes
	api.POST("/intentions", h.Intentions.Submit)
	api.GET("/invitations/validate", h.Invitations.Validate)
	api.POST("/invitations/register", h.Invitations.Register)
	api.POST("/members/login", h.Members.Login)
	api.GET("/members", h.Members.List)
	api.POST("/admin/verify", h.Admin.Verify)

	// Member session routes
	member := api.Group("")
	member.Use(middleware.MemberAuth(sessions))
	{
		member.POST("/members/logout", h.Members.Logout)
		member.POST("/referrals", h.Referrals.Create)
		member.GET("/referrals", h.Referrals.List)
		member.PATCH("/referrals/:id", h.Referrals.UpdateStatus)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(gate))
	{
		admin.GET("/intentions", h.Admin.ListIntentions)
		admin.PATCH("/intentions/:id", h.Admin.TransitionIntention)
		admin.POST("/invitations", h.Admin.GenerateInvitation)
		admin.DELETE("/members/:id", h.Admin.DeleteMember)
	}

	return r
}
