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

type CreateReferralInput struct {
	SenderID    string `json:"membro_indicador_id" validate:"required,uuid"`
	RecipientID string `json:"membro_indicado_id" validate:"required,uuid"`
	Contact     string `json:"empresa_contato" validate:"required,min=2,max=200"`
	Description string `json:"descricao" validate:"required,min=10,max=1000"`
}

func (in *CreateReferralInput) normalize() {
	in.SenderID = strings.ToLower(strings.TrimSpace(in.SenderID))
	in.RecipientID = strings.ToLower(strings.TrimSpace(in.RecipientID))
	in.Contact = strings.TrimSpace(in.Contact)
	in.Description = strings.TrimSpace(in.Description)
}

// ReferralList splits a member's referrals into those sent and those received.
type ReferralList struct {
	Sent     []model.Referral `json:"feitas"`
	Received []model.Referral `json:"recebidas"`
}

type ReferralService interface {
	// Create records a referral sent by actorID. An empty sender defaults to actorID;
	// any other sender is rejected.
	Create(ctx context.Context, actorID uuid.UUID, in CreateReferralInput) (*model.Referral, error)
	ListFor(ctx context.Context, memberID string) (*ReferralList, error)
	// UpdateStatus lets either party move the referral to any status.
	UpdateStatus(ctx context.Context, actorID uuid.UUID, id uuid.UUID, status model.ReferralStatus) (*model.Referral, error)
}

type referralService struct {
	repos  repository.Repositories
	logger *zap.Logger
}

func NewReferralService(repos repository.Repositories, logger *zap.Logger) ReferralService {
	return &referralService{repos: repos, logger: logger}
}

func (s *referralService) Create(ctx context.Context, actorID uuid.UUID, in CreateReferralInput) (*model.Referral, error) {
	in.normalize()
	if in.SenderID == "" {
		in.SenderID = actorID.String()
	}
	if in.SenderID == in.RecipientID {
		return nil, ErrSelfReferral
	}
	if err := validator.ValidateStruct(in); err != nil {
		return nil, err
	}
	senderID := uuid.MustParse(in.SenderID)
	recipientID := uuid.MustParse(in.RecipientID)
	if senderID != actorID {
		return nil, ErrReferralNotParty
	}

	for _, id := range []uuid.UUID{senderID, recipientID} {
		if _, err := s.repos.Members.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrReferralMemberUnknown
			}
			return nil, fmt.Errorf("find member: %w", err)
		}
	}

	referral := &model.Referral{
		SenderID:    senderID,
		RecipientID: recipientID,
		Contact:     in.Contact,
		Description: in.Description,
		Status:      model.ReferralStatusNew,
	}
	if err := s.repos.Referrals.Create(ctx, referral); err != nil {
		return nil, fmt.Errorf("create referral: %w", err)
	}
	metrics.ReferralsCreated.Inc()
	s.logger.Info("referral created", zap.String("referral_id", referral.ID.String()))

	created, err := s.repos.Referrals.GetByID(ctx, referral.ID)
	if err != nil {
		return nil, fmt.Errorf("reload referral: %w", err)
	}
	return created, nil
}

func (s *referralService) ListFor(ctx context.Context, memberID string) (*ReferralList, error) {
	id, err := uuid.Parse(strings.TrimSpace(memberID))
	if err != nil {
		return nil, validator.Field("member_id", "uuid", "")
	}

	sent, err := s.repos.Referrals.ListSent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list sent referrals: %w", err)
	}
	received, err := s.repos.Referrals.ListReceived(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list received referrals: %w", err)
	}

	list := &ReferralList{Sent: sent, Received: received}
	if list.Sent == nil {
		list.Sent = []model.Referral{}
	}
	if list.Received == nil {
		list.Received = []model.Referral{}
	}
	return list, nil
}

func (s *referralService) UpdateStatus(ctx context.Context, actorID uuid.UUID, id uuid.UUID, status model.ReferralStatus) (*model.Referral, error) {
	if !status.Valid() {
		return nil, ErrInvalidReferralStatus
	}
	current, err := s.repos.Referrals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferralNotFound
		}
		return nil, fmt.Errorf("find referral: %w", err)
	}
	if actorID != current.SenderID && actorID != current.RecipientID {
		return nil, ErrReferralNotParty
	}

	if err := s.repos.Referrals.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update referral status: %w", err)
	}

	updated, err := s.repos.Referrals.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload referral: %w", err)
	}
	return updated, nil
}

var _ ReferralService = (*referralService)(nil)
