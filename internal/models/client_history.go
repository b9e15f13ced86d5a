package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InteractionCall        = "call"
	InteractionWhatsApp    = "whatsapp"
	InteractionEmail       = "email"
	InteractionAppointment = "appointment"
	InteractionPayment     = "payment"
	InteractionNote        = "note"
)

type ClientHistory struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	InteractionType string    `gorm:"size:20;not null" json:"interaction_type"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	InteractionDate time.Time `gorm:"not null;index" json:"interaction_date"`
	CreatedBy       *string   `gorm:"size:120" json:"created_by,omitempty"`
	Metadata        string    `gorm:"type:text" json:"metadata,omitempty"`
}

func (ClientHistory) TableName() string { return "client_history" }

func (h *ClientHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.InteractionDate.IsZero() {
		h.InteractionDate = time.Now()
	}
	return nil
}
