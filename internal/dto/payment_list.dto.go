package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentListDTO struct {
	ID            uuid.UUID       `json:"id"`
	ClientID      uuid.UUID       `json:"client_id"`
	ClientName    string          `json:"client_name"`
	AppointmentID *uuid.UUID      `json:"appointment_id,omitempty"`
	ServiceName   string          `json:"service_name"`
	Value         decimal.Decimal `json:"value"`
	DueDate       string          `json:"due_date"`
	PaymentDate   *string         `json:"payment_date,omitempty"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	Status        string          `json:"status"`
	DaysOverdue   int             `json:"days_overdue"`
}
