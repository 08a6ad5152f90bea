package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bizcircle/portal/internal/model"
)

type gormInvitationRepository struct {
	db *gorm.DB
}

func NewGormInvitationRepository(db *gorm.DB) InvitationRepository {
	return &gormInvitationRepository{db: db}
}

func (r *gormInvitationRepository) Create(ctx context.Context, invitation *model.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

func (r *gormInvitationRepository) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	var invitation model.Invitation
	if err := r.db.WithContext(ctx).
		Preload("Intention").
		Where("token = ?", token).
		First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *gormInvitationRepository) GetUnusedByIntention(ctx context.Context, intentionID uuid.UUID) (*model.Invitation, error) {
	var invitation model.Invitation
	if err := r.db.WithContext(ctx).
		Where("intention_id = ? AND used = ?", intentionID, false).
		Order("created_at DESC").
		First(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *gormInvitationRepository) MarkUsed(ctx context.Context, token string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Invitation{}).
		Where("token = ? AND used = ?", token, false).
		Updates(map[string]any{"used": true, "used_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
