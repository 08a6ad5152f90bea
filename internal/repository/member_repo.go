package repository

import (
	"context"

	"github.com/google/uuid"

	"bizcircle/portal/internal/model"
)

type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Member, error)
	GetByEmail(ctx context.Context, email string) (*model.Member, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// List returns every member ordered by name.
	List(ctx context.Context) ([]model.Member, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
