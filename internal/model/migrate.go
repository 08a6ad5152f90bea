package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models. Unique indexes on
// intentions.email, members.email and invitations.token come from the struct tags.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Intention{},
		&Invitation{},
		&Member{},
		&Referral{},
	)
}
