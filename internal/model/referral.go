package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReferralStatus string

const (
	ReferralStatusNew       ReferralStatus = "nova"
	ReferralStatusInContact ReferralStatus = "em_contato"
	ReferralStatusClosed    ReferralStatus = "fechada"
	ReferralStatusDeclined  ReferralStatus = "recusada"
)

func (s ReferralStatus) Valid() bool {
	switch s {
	case ReferralStatusNew, ReferralStatusInContact, ReferralStatusClosed, ReferralStatusDeclined:
		return true
	}
	return false
}

// Referral is a business lead passed from one member (sender) to another (recipient).
type Referral struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primaryKey" json:"id"`
	SenderID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"membro_indicador_id"`
	RecipientID uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"membro_indicado_id"`
	Contact     string         `gorm:"type:varchar(200);not null" json:"empresa_contato"`
	Description string         `gorm:"type:text;not null" json:"descricao"`
	Status      ReferralStatus `gorm:"type:varchar(16);not null" json:"status"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Sender    *Member `gorm:"foreignKey:SenderID" json:"membro_indicador,omitempty"`
	Recipient *Member `gorm:"foreignKey:RecipientID" json:"membro_indicado,omitempty"`
}

func (Referral) TableName() string { return "referrals" }

func (r *Referral) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = ReferralStatusNew
	}
	return nil
}
