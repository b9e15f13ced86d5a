package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AppointmentScheduled = "Scheduled"
	AppointmentConfirmed = "Confirmed"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
)

type Appointment struct {
	Base

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   *Client   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client,omitempty"`

	ServiceID *uuid.UUID `gorm:"type:uuid" json:"service_id,omitempty"`

	ServiceName     string          `gorm:"size:120;not null" json:"service_name"`
	AppointmentDate string          `gorm:"size:10;not null;index" json:"appointment_date"`
	AppointmentTime string          `gorm:"size:5;not null" json:"appointment_time"`
	Status          string          `gorm:"size:20;not null;default:'Scheduled'" json:"status"`
	Value           decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"value"`
	Notes           string          `gorm:"type:text" json:"notes"`

	CancelReason string     `gorm:"size:255" json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	RemindedAt   *time.Time `json:"reminded_at,omitempty"`
}
