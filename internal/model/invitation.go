package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invitation is a single-use registration credential minted for an Intention.
type Invitation struct {
	ID          uuid.UUID  `gorm:"type:varchar(36);primaryKey" json:"id"`
	Token       string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`
	IntentionID uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"intencao_id"`
	Used        bool       `gorm:"not null;default:false;index" json:"usado"`
	UsedAt      *time.Time `json:"usado_em,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Intention *Intention `gorm:"foreignKey:IntentionID" json:"-"`
}

func (Invitation) TableName() string { return "invitations" }

func (i *Invitation) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
