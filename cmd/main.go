package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bizcircle/portal/internal/config"
	"bizcircle/portal/internal/handler"
	"bizcircle/portal/internal/model"
	"bizcircle/portal/internal/repository"
	"bizcircle/portal/internal/service"
	jwtpkg "bizcircle/portal/pkg/jwt"
)

func main() {
	configPath := pflag.StringP("config", "c", "config.yaml", "path to the YAML configuration file")
	pflag.Parse()

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Admin.Key == "" {
		logger.Warn("admin.key is empty; administrative operations are disabled")
	}
	if cfg.Session.SigningKey == "" {
		logger.Fatal("session.signing_key is required")
	}

	// 3. Connect to the database
	db, err := config.NewDatabase(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("failed to access database handle", zap.Error(err))
	}
	defer sqlDB.Close()

	// 4. Auto-migrate if enabled
	if cfg.Database.AutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			logger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		logger.Info("database migration completed")
	}

	// 5. Initialize session store (Redis or in-memory)
	var sessionStore repository.SessionStore
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		sessionStore = repository.NewRedisSessionStore(redisClient)
		logger.Info("using Redis session store")
	case "memory":
		sessionStore = repository.NewMemorySessionStore()
		logger.Info("using in-memory session store")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	// 6. Initialize repositories
	repos := repository.NewGormRepositories(db)
	transactor := repository.NewGormTransactor(db)

	// 7. Initialize JWT manager and admin gate
	jwtManager := jwtpkg.NewManager(cfg.Session.SigningKey, cfg.Session.Issuer, cfg.Session.TTL)
	gate := service.NewAdminGate(cfg.Admin.Key)

	// 8. Initialize invitation mailer
	sender, err := service.NewSMTPSender(cfg.SMTP)
	if err != nil {
		logger.Fatal("failed to init smtp sender", zap.Error(err))
	}
	if sender != nil {
		logger.Info("invitation emails enabled", zap.String("smtp_host", cfg.SMTP.Host))
	}
	mailer := service.NewInvitationMailer(cfg.Invite.BaseURL, sender, logger)

	// 9. Initialize services
	intentionService := service.NewIntentionService(repos, transactor, gate, mailer, logger)
	invitationService := service.NewInvitationService(repos, transactor, gate, mailer, logger)
	memberService := service.NewMemberService(repos, transactor, gate, jwtManager, sessionStore, logger)
	referralService := service.NewReferralService(repos, logger)

	// 10. Initialize handlers
	handlers := handler.Handlers{
		Admin:       handler.NewAdminHandler(gate, intentionService, invitationService, memberService, logger),
		Intentions:  handler.NewIntentionHandler(intentionService, logger),
		Invitations: handler.NewInvitationHandler(invitationService, logger),
		Members:     handler.NewMemberHandler(memberService, logger),
		Referrals:   handler.NewReferralHandler(referralService, logger),
	}

	// 11. Setup router
	router := handler.SetupRouter(cfg, logger, gate, memberService, handlers)

	// 12. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 13. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 14. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}
	logger.Info("server exited gracefully")
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
