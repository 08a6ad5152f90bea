package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IntentionStatus string

const (
	IntentionStatusPending  IntentionStatus = "pendente"
	IntentionStatusApproved IntentionStatus = "aprovado"
	IntentionStatusRejected IntentionStatus = "recusado"
)

func (s IntentionStatus) Valid() bool {
	switch s {
	case IntentionStatusPending, IntentionStatusApproved, IntentionStatusRejected:
		return true
	}
	return false
}

// Intention is a prospective member's request to join the network.
type Intention struct {
	ID        uuid.UUID       `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(100);not null" json:"nome"`
	Email     string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Company   *string         `gorm:"type:varchar(100)" json:"empresa"`
	Reason    string          `gorm:"type:varchar(500);not null" json:"motivo"`
	Status    IntentionStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Intention) TableName() string { return "intentions" }

func (i *Intention) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = IntentionStatusPending
	}
	return nil
}
