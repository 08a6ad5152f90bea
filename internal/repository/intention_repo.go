package repository

import (
	"context"

	"github.com/google/uuid"

	"bizcircle/portal/internal/model"
)

type IntentionRepository interface {
	Create(ctx context.Context, intention *model.Intention) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Intention, error)
	GetByEmail(ctx context.Context, email string) (*model.Intention, error)
	// List returns every intention, newest first.
	List(ctx context.Context) ([]model.Intention, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.IntentionStatus) error
}
