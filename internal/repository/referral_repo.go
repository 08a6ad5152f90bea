package repository

import (
	"context"

	"github.com/google/uuid"

	"bizcircle/portal/internal/model"
)

type ReferralRepository interface {
	Create(ctx context.Context, referral *model.Referral) error
	// GetByID loads the referral with both parties' profiles.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Referral, error)
	// ListSent returns referrals sent by memberID, newest first, with the recipient loaded.
	ListSent(ctx context.Context, memberID uuid.UUID) ([]model.Referral, error)
	// ListReceived returns referrals received by memberID, newest first, with the sender loaded.
	ListReceived(ctx context.Context, memberID uuid.UUID) ([]model.Referral, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReferralStatus) error
	// DeleteByMember removes every referral where memberID is sender or recipient.
	DeleteByMember(ctx context.Context, memberID uuid.UUID) (int64, error)
}
