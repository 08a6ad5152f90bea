package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bizcircle/portal/internal/model"
)

type gormReferralRepository struct {
	db *gorm.DB
}

func NewGormReferralRepository(db *gorm.DB) ReferralRepository {
	return &gormReferralRepository{db: db}
}

func (r *gormReferralRepository) Create(ctx context.Context, referral *model.Referral) error {
	return r.db.WithContext(ctx).Create(referral).Error
}

func (r *gormReferralRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Referral, error) {
	var referral model.Referral
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		First(&referral, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &referral, nil
}

func (r *gormReferralRepository) ListSent(ctx context.Context, memberID uuid.UUID) ([]model.Referral, error) {
	var referrals []model.Referral
	if err := r.db.WithContext(ctx).
		Preload("Recipient").
		Where("sender_id = ?", memberID).
		Order("created_at DESC").
		Find(&referrals).Error; err != nil {
		return nil, err
	}
	return referrals, nil
}

func (r *gormReferralRepository) ListReceived(ctx context.Context, memberID uuid.UUID) ([]model.Referral, error) {
	var referrals []model.Referral
	if err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("recipient_id = ?", memberID).
		Order("created_at DESC").
		Find(&referrals).Error; err != nil {
		return nil, err
	}
	return referrals, nil
}

func (r *gormReferralRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReferralStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Referral{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

func (r *gormReferralRepository) DeleteByMember(ctx context.Context, memberID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", memberID, memberID).
		Delete(&model.Referral{})
	return res.RowsAffected, res.Error
}
