package models

import "github.com/shopspring/decimal"

// Service is an entry of the catalog offered to clients.
type Service struct {
	Base

	Name            string          `gorm:"size:120;not null" json:"name"`
	Description     string          `gorm:"size:255" json:"description"`
	DefaultPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"default_price"`
	DurationMinutes int             `gorm:"not null;default:60" json:"duration_minutes"`
	Active          bool            `gorm:"not null;default:true" json:"active"`
}
