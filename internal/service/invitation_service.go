package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bizcircle/portal/internal/model"
	"bizcircle/portal/internal/repository"
	"bizcircle/portal/pkg/crypto"
	"bizcircle/portal/pkg/metrics"
	"bizcircle/portal/pkg/validator"
)

// Reasons reported by Validate when a token cannot be used.
const (
	ReasonNotFound = "not-found"
	ReasonUsed     = "used"
	ReasonMismatch = "mismatch"
)

// IssuedInvitation is a minted invitation together with its registration link.
type IssuedInvitation struct {
	Invitation *model.Invitation
	URL        string
}

// IntentionSnapshot is the read-only view of an intention used to pre-fill registration.
type IntentionSnapshot struct {
	Name    string  `json:"nome"`
	Email   string  `json:"email"`
	Company *string `json:"empresa"`
	Reason  string  `json:"motivo"`
}

type InvitationRef struct {
	ID    uuid.UUID `json:"id"`
	Token string    `json:"token"`
}

type InvitationValidation struct {
	Valid      bool               `json:"valid"`
	Reason     string             `json:"reason,omitempty"`
	Invitation *InvitationRef     `json:"convite,omitempty"`
	Intention  *IntentionSnapshot `json:"intencao,omitempty"`
}

// RegisterInput is the payload that exchanges an invitation token for a member account.
type RegisterInput struct {
	Token       string  `json:"token" validate:"required,min=8,max=64"`
	IntentionID string  `json:"intencao_id"`
	Name        string  `json:"nome" validate:"required,min=3,max=100"`
	Email       string  `json:"email" validate:"required,email,max=255"`
	Password    string  `json:"password" validate:"required,min=6,max=50"`
	Company     *string `json:"empresa" validate:"omitempty,max=100"`
	Title       *string `json:"cargo" validate:"omitempty,max=100"`
	Phone       *string `json:"telefone" validate:"omitempty,phone"`
}

func (in *RegisterInput) normalize() {
	in.Token = strings.TrimSpace(in.Token)
	in.IntentionID = strings.ToLower(strings.TrimSpace(in.IntentionID))
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Company = trimOptional(in.Company)
	in.Title = trimOptional(in.Title)
	in.Phone = trimOptional(in.Phone)
}

type InvitationService interface {
	// Generate mints an invitation for an intention on explicit admin request.
	Generate(ctx context.Context, intentionID uuid.UUID, secret string) (*IssuedInvitation, error)
	// Validate reports whether token can be consumed. It never changes state.
	Validate(ctx context.Context, token string, intentionID string) (*InvitationValidation, error)
	// Consume atomically creates the member and marks the invitation used.
	Consume(ctx context.Context, in RegisterInput) (*model.Member, error)
}

type invitationService struct {
	repos  repository.Repositories
	tx     repository.Transactor
	gate   AdminGate
	mailer *InvitationMailer
	logger *zap.Logger
	now    func() time.Time
}

func NewInvitationService(
	repos repository.Repositories,
	tx repository.Transactor,
	gate AdminGate,
	mailer *InvitationMailer,
	logger *zap.Logger,
) InvitationService {
	return &invitationService{
		repos:  repos,
		tx:     tx,
		gate:   gate,
		mailer: mailer,
		logger: logger,
		now:    time.Now,
	}
}

func (s *invitationService) Generate(ctx context.Context, intentionID uuid.UUID, secret string) (*IssuedInvitation, error) {
	if err := requireAdmin(s.gate, secret); err != nil {
		return nil, err
	}

	intention, err := s.repos.Intentions.GetByID(ctx, intentionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntentionNotFound
		}
		return nil, fmt.Errorf("find intention: %w", err)
	}

	invitation, err := mintInvitation(ctx, s.repos.Invitations, intention.ID)
	if err != nil {
		return nil, err
	}
	metrics.InvitationsMinted.WithLabelValues("explicit").Inc()

	link := s.mailer.InvitationIssued(ctx, intention, invitation)
	return &IssuedInvitation{Invitation: invitation, URL: link}, nil
}

func (s *invitationService) Validate(ctx context.Context, token string, intentionID string) (*InvitationValidation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvitationTokenMissing
	}

	invitation, err := checkInvitation(ctx, s.repos.Invitations, token, intentionID)
	if err != nil {
		if reason := validationReason(err); reason != "" {
			return &InvitationValidation{Valid: false, Reason: reason}, nil
		}
		return nil, err
	}

	intention := invitation.Intention
	return &InvitationValidation{
		Valid:      true,
		Invitation: &InvitationRef{ID: invitation.ID, Token: invitation.Token},
		Intention: &IntentionSnapshot{
			Name:    intention.Name,
			Email:   intention.Email,
			Company: intention.Company,
			Reason:  intention.Reason,
		},
	}, nil
}

func (s *invitationService) Consume(ctx context.Context, in RegisterInput) (*model.Member, error) {
	in.normalize()
	if err := validator.ValidateStruct(in); err != nil {
		return nil, err
	}

	// 1. Cheap pre-check so invalid tokens never pay for hashing
	if _, err := checkInvitation(ctx, s.repos.Invitations, in.Token, in.IntentionID); err != nil {
		s.recordConsume(err)
		return nil, err
	}

	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 2. Re-check, claim the token and create the member in one transaction
	var member *model.Member
	err = s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		if _, err := checkInvitation(ctx, repos.Invitations, in.Token, in.IntentionID); err != nil {
			return err
		}

		exists, err := repos.Members.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return fmt.Errorf("check member email: %w", err)
		}
		if exists {
			return ErrMemberEmailTaken
		}

		claimed, err := repos.Invitations.MarkUsed(ctx, in.Token, s.now())
		if err != nil {
			return fmt.Errorf("mark invitation used: %w", err)
		}
		if !claimed {
			return ErrInvitationUsed
		}

		m := &model.Member{
			Name:         in.Name,
			Email:        in.Email,
			PasswordHash: hash,
			Company:      in.Company,
			Title:        in.Title,
			Phone:        in.Phone,
		}
		if err := repos.Members.Create(ctx, m); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrMemberEmailTaken
			}
			return fmt.Errorf("create member: %w", err)
		}
		member = m
		return nil
	})
	s.recordConsume(err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("invitation consumed", zap.String("member_id", member.ID.String()))
	return member, nil
}

func (s *invitationService) recordConsume(err error) {
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrInvitationUsed):
		result = "used"
	case errors.Is(err, ErrInvitationNotFound):
		result = "not_found"
	case errors.Is(err, ErrInvitationMismatch):
		result = "mismatch"
	case errors.Is(err, ErrMemberEmailTaken):
		result = "conflict"
	default:
		result = "error"
	}
	metrics.InvitationsConsumed.WithLabelValues(result).Inc()
}

// checkInvitation loads the invitation for token and applies the consumption rules:
// it must exist, resolve to an intention, be unused and, when intentionID is given,
// belong to that intention.
func checkInvitation(ctx context.Context, repo repository.InvitationRepository, token string, intentionID string) (*model.Invitation, error) {
	invitation, err := repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("find invitation: %w", err)
	}
	if invitation.Intention == nil {
		return nil, ErrInvitationNotFound
	}
	if invitation.Used {
		return nil, ErrInvitationUsed
	}
	if intentionID = strings.TrimSpace(intentionID); intentionID != "" {
		id, err := uuid.Parse(intentionID)
		if err != nil || id != invitation.IntentionID {
			return nil, ErrInvitationMismatch
		}
	}
	return invitation, nil
}

func validationReason(err error) string {
	switch {
	case errors.Is(err, ErrInvitationNotFound):
		return ReasonNotFound
	case errors.Is(err, ErrInvitationUsed):
		return ReasonUsed
	case errors.Is(err, ErrInvitationMismatch):
		return ReasonMismatch
	}
	return ""
}

var _ InvitationService = (*invitationService)(nil)
