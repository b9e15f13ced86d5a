package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentPaid    = "Paid"
	PaymentPending = "Pending"
	PaymentOverdue = "Overdue"
)

const (
	MethodPIX      = "PIX"
	MethodBoleto   = "Boleto"
	MethodCard     = "Card"
	MethodTransfer = "Transfer"
	MethodCash     = "Cash"
)

type Payment struct {
	Base

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   *Client   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client,omitempty"`

	AppointmentID *uuid.UUID   `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	Appointment   *Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"appointment,omitempty"`

	ServiceName   string          `gorm:"size:120;not null" json:"service_name"`
	Value         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"value"`
	DueDate       string          `gorm:"size:10;not null;index" json:"due_date"`
	PaymentDate   *string         `gorm:"size:10" json:"payment_date,omitempty"`
	PaymentMethod *string         `gorm:"size:20" json:"payment_method,omitempty"`
	Status        string          `gorm:"size:20;not null;default:'Pending';index" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes"`

	CheckoutURL string `gorm:"size:255" json:"checkout_url,omitempty"`
}
