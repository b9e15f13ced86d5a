package models

import "github.com/shopspring/decimal"

const (
	ClientStatusActive   = "Active"
	ClientStatusPending  = "Pending"
	ClientStatusInactive = "Inactive"
)

const (
	OriginReferral    = "Referral"
	OriginSocialMedia = "SocialMedia"
	OriginWhatsApp    = "WhatsApp"
	OriginOther       = "Other"
)

// Client is a customer or lead. RegistrationDate, LastContact and the
// totals are written by the store only.
type Client struct {
	Base

	Name   string `gorm:"size:120;not null" json:"name"`
	Phone  string `gorm:"size:30;not null;index" json:"phone"`
	Email  string `gorm:"size:120" json:"email"`
	Status string `gorm:"size:20;not null;default:'Active'" json:"status"`
	Origin string `gorm:"size:20;not null;default:'Other'" json:"origin"`

	RegistrationDate string `gorm:"size:10;index" json:"registration_date"`
	LastContact      string `gorm:"size:10;index" json:"last_contact"`

	TotalAppointments int             `gorm:"not null;default:0" json:"total_appointments"`
	TotalSpent        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total_spent"`

	Notes     string `gorm:"type:text" json:"notes"`
	AvatarURL string `gorm:"size:255" json:"avatar_url"`
}
