package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bizcircle/portal/internal/model"
	"bizcircle/portal/internal/repository"
	"bizcircle/portal/pkg/metrics"
	"bizcircle/portal/pkg/validator"
)

// SubmitIntentionInput is the public join request payload.
type SubmitIntentionInput struct {
	Name    string  `json:"nome" validate:"required,min=3,max=100"`
	Email   string  `json:"email" validate:"required,email,max=255"`
	Company *string `json:"empresa" validate:"omitempty,max=100"`
	Reason  string  `json:"motivo" validate:"required,min=10,max=500"`
}

func (in *SubmitIntentionInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Company = trimOptional(in.Company)
	in.Reason = strings.TrimSpace(in.Reason)
}

// TransitionResult carries the updated intention and, when the transition approved it,
// the invitation the applicant should receive.
type TransitionResult struct {
	Intention  *model.Intention
	Invitation *IssuedInvitation
}

type IntentionService interface {
	Submit(ctx context.Context, in SubmitIntentionInput) (*model.Intention, error)
	List(ctx context.Context, secret string) ([]model.Intention, error)
	Transition(ctx context.Context, id uuid.UUID, status model.IntentionStatus, secret string) (*TransitionResult, error)
}

type intentionService struct {
	repos  repository.Repositories
	tx     repository.Transactor
	gate   AdminGate
	mailer *InvitationMailer
	logger *zap.Logger
}

func NewIntentionService(
	repos repository.Repositories,
	tx repository.Transactor,
	gate AdminGate,
	mailer *InvitationMailer,
	logger *zap.Logger,
) IntentionService {
	return &intentionService{
		repos:  repos,
		tx:     tx,
		gate:   gate,
		mailer: mailer,
		logger: logger,
	}
}

func (s *intentionService) Submit(ctx context.Context, in SubmitIntentionInput) (*model.Intention, error) {
	in.normalize()
	if err := validator.ValidateStruct(in); err != nil {
		return nil, err
	}

	// 1. One intention per email
	if _, err := s.repos.Intentions.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrIntentionEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check intention email: %w", err)
	}

	// 2. Members cannot apply again
	exists, err := s.repos.Members.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check member email: %w", err)
	}
	if exists {
		return nil, ErrMemberEmailTaken
	}

	// 3. Create; the unique index decides concurrent submissions
	intention := &model.Intention{
		Name:    in.Name,
		Email:   in.Email,
		Company: in.Company,
		Reason:  in.Reason,
		Status:  model.IntentionStatusPending,
	}
	if err := s.repos.Intentions.Create(ctx, intention); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrIntentionEmailTaken
		}
		return nil, fmt.Errorf("create intention: %w", err)
	}

	metrics.IntentionsSubmitted.Inc()
	s.logger.Info("intention submitted", zap.String("intention_id", intention.ID.String()))
	return intention, nil
}

func (s *intentionService) List(ctx context.Context, secret string) ([]model.Intention, error) {
	if err := requireAdmin(s.gate, secret); err != nil {
		return nil, err
	}
	intentions, err := s.repos.Intentions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list intentions: %w", err)
	}
	return intentions, nil
}

// Transition sets the intention's status. Approving mints an invitation in the same
// transaction, unless the intention still holds an unused one, which is reused.
func (s *intentionService) Transition(ctx context.Context, id uuid.UUID, status model.IntentionStatus, secret string) (*TransitionResult, error) {
	if err := requireAdmin(s.gate, secret); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, ErrInvalidIntentionStatus
	}

	var (
		intention  *model.Intention
		invitation *model.Invitation
		minted     bool
	)
	err := s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		current, err := repos.Intentions.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIntentionNotFound
			}
			return fmt.Errorf("find intention: %w", err)
		}

		if err := repos.Intentions.UpdateStatus(ctx, id, status); err != nil {
			return fmt.Errorf("update intention status: %w", err)
		}
		current.Status = status
		intention = current

		if status != model.IntentionStatusApproved {
			return nil
		}

		existing, err := repos.Invitations.GetUnusedByIntention(ctx, id)
		switch {
		case err == nil:
			invitation = existing
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("find unused invitation: %w", err)
		}

		invitation, err = mintInvitation(ctx, repos.Invitations, id)
		if err != nil {
			return err
		}
		minted = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IntentionTransitions.WithLabelValues(string(status)).Inc()
	s.logger.Info("intention transitioned",
		zap.String("intention_id", id.String()),
		zap.String("status", string(status)),
	)

	result := &TransitionResult{Intention: intention}
	if invitation != nil {
		var link string
		if minted {
			metrics.InvitationsMinted.WithLabelValues("approval").Inc()
			link = s.mailer.InvitationIssued(ctx, intention, invitation)
		} else {
			link = s.mailer.RegistrationURL(invitation)
		}
		result.Invitation = &IssuedInvitation{Invitation: invitation, URL: link}
	}
	return result, nil
}

var _ IntentionService = (*intentionService)(nil)
