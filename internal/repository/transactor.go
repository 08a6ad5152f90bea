package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles the repositories that share one database handle or transaction.
type Repositories struct {
	Intentions  IntentionRepository
	Invitations InvitationRepository
	Members     MemberRepository
	Referrals   ReferralRepository
}

func NewGormRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Intentions:  NewGormIntentionRepository(db),
		Invitations: NewGormInvitationRepository(db),
		Members:     NewGormMemberRepository(db),
		Referrals:   NewGormReferralRepository(db),
	}
}

// Transactor runs fn with repositories bound to a single transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(repos Repositories) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

func NewGormTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(repos Repositories) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormRepositories(tx))
	})
}
