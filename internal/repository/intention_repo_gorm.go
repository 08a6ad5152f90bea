package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bizcircle/portal/internal/model"
)

type gormIntentionRepository struct {
	db *gorm.DB
}

func NewGormIntentionRepository(db *gorm.DB) IntentionRepository {
	return &gormIntentionRepository{db: db}
}

func (r *gormIntentionRepository) Create(ctx context.Context, intention *model.Intention) error {
	return r.db.WithContext(ctx).Create(intention).Error
}

func (r *gormIntentionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Intention, error) {
	var intention model.Intention
	if err := r.db.WithContext(ctx).First(&intention, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &intention, nil
}

func (r *gormIntentionRepository) GetByEmail(ctx context.Context, email string) (*model.Intention, error) {
	var intention model.Intention
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&intention).Error; err != nil {
		return nil, err
	}
	return &intention, nil
}

func (r *gormIntentionRepository) List(ctx context.Context) ([]model.Intention, error) {
	var intentions []model.Intention
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&intentions).Error; err != nil {
		return nil, err
	}
	return intentions, nil
}

func (r *gormIntentionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.IntentionStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Intention{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}
