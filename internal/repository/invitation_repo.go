package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bizcircle/portal/internal/model"
)

type InvitationRepository interface {
	Create(ctx context.Context, invitation *model.Invitation) error
	// GetByToken loads the invitation together with its owning intention.
	GetByToken(ctx context.Context, token string) (*model.Invitation, error)
	GetUnusedByIntention(ctx context.Context, intentionID uuid.UUID) (*model.Invitation, error)
	// MarkUsed flips used from false to true. It reports false when no unused
	// invitation matched, i.e. a concurrent consumer got there first.
	MarkUsed(ctx context.Context, token string, at time.Time) (bool, error)
}
