package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentListDTO is one row of the appointment search and the daily
// schedule.
type AppointmentListDTO struct {
	ID              uuid.UUID       `json:"id"`
	ClientID        uuid.UUID       `json:"client_id"`
	ClientName      string          `json:"client_name"`
	ClientPhone     string          `json:"client_phone"`
	ServiceName     string          `json:"service_name"`
	AppointmentDate string          `json:"appointment_date"`
	AppointmentTime string          `json:"appointment_time"`
	Status          string          `json:"status"`
	Value           decimal.Decimal `json:"value"`
	Notes           string          `json:"notes"`
}
