package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bizcircle/portal/internal/model"
	"bizcircle/portal/internal/repository"
	"bizcircle/portal/pkg/crypto"
	jwtpkg "bizcircle/portal/pkg/jwt"
	"bizcircle/portal/pkg/metrics"
	"bizcircle/portal/pkg/validator"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is returned on successful authentication. Member never carries the hash.
type LoginResult struct {
	Member    *model.Member `json:"member"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
}

type MemberService interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	// Authenticate validates a session token and rejects revoked ones and those whose
	// member was deleted.
	Authenticate(ctx context.Context, token string) (*jwtpkg.Claims, error)
	Logout(ctx context.Context, claims *jwtpkg.Claims) error
	List(ctx context.Context) ([]model.Member, error)
	// Delete removes the member and every referral it sent or received.
	Delete(ctx context.Context, id uuid.UUID, secret string) error
}

type memberService struct {
	repos      repository.Repositories
	tx         repository.Transactor
	gate       AdminGate
	jwtManager *jwtpkg.Manager
	sessions   repository.SessionStore
	logger     *zap.Logger
}

func NewMemberService(
	repos repository.Repositories,
	tx repository.Transactor,
	gate AdminGate,
	jwtManager *jwtpkg.Manager,
	sessions repository.SessionStore,
	logger *zap.Logger,
) MemberService {
	return &memberService{
		repos:      repos,
		tx:         tx,
		gate:       gate,
		jwtManager: jwtManager,
		sessions:   sessions,
		logger:     logger,
	}
}

func (s *memberService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validator.ValidateStruct(in); err != nil {
		return nil, err
	}

	member, err := s.repos.Members.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	if !crypto.CheckPassword(in.Password, member.PasswordHash) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.jwtManager.GenerateSessionToken(member.ID)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.logger.Info("member logged in", zap.String("member_id", member.ID.String()))
	return &LoginResult{
		Member:    member,
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *memberService) Authenticate(ctx context.Context, token string) (*jwtpkg.Claims, error) {
	claims, err := s.jwtManager.Validate(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check session revocation: %w", err)
	}
	if revoked {
		return nil, ErrUnauthorized
	}

	// Sessions end with the member.
	memberID, err := claims.MemberID()
	if err != nil {
		return nil, ErrUnauthorized
	}
	if _, err := s.repos.Members.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("find session member: %w", err)
	}
	return claims, nil
}

func (s *memberService) Logout(ctx context.Context, claims *jwtpkg.Claims) error {
	ttl := s.jwtManager.TTL()
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *memberService) List(ctx context.Context) ([]model.Member, error) {
	members, err := s.repos.Members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (s *memberService) Delete(ctx context.Context, id uuid.UUID, secret string) error {
	if err := requireAdmin(s.gate, secret); err != nil {
		return err
	}

	var removed int64
	err := s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Members.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return fmt.Errorf("find member: %w", err)
		}

		n, err := repos.Referrals.DeleteByMember(ctx, id)
		if err != nil {
			return fmt.Errorf("delete member referrals: %w", err)
		}
		removed = n

		if err := repos.Members.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete member: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("member deleted",
		zap.String("member_id", id.String()),
		zap.Int64("referrals_removed", removed),
	)
	return nil
}

var _ MemberService = (*memberService)(nil)
