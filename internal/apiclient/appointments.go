package apiclient

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/crm-manager/internal/dto"
	"github.com/BruksfildServices01/crm-manager/internal/models"
)

type AppointmentInput struct {
	ClientID    uuid.UUID        `json:"client_id"`
	ServiceID   *uuid.UUID       `json:"service_id,omitempty"`
	ServiceName string           `json:"service_name,omitempty"`
	Date        string           `json:"appointment_date"`
	Time        string           `json:"appointment_time"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Status      string           `json:"status,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

type AppointmentWithPaymentInput struct {
	AppointmentInput
	DueDate      string `json:"due_date,omitempty"`
	PaymentNotes string `json:"payment_notes,omitempty"`
}

type AppointmentPatch struct {
	ClientID    *uuid.UUID       `json:"client_id,omitempty"`
	ServiceName *string          `json:"service_name,omitempty"`
	Date        *string          `json:"appointment_date,omitempty"`
	Time        *string          `json:"appointment_time,omitempty"`
	Value       *decimal.Decimal `json:"value,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

type AppointmentSearch struct {
	DateFrom    string
	DateTo      string
	Status      string
	ClientID    *uuid.UUID
	ServiceName string
	Limit       int
	Offset      int
}

func (c *Client) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	return getList[models.Appointment](ctx, c, "/api/appointments", nil)
}

func (c *Client) CreateAppointment(ctx context.Context, in AppointmentInput) (*models.Appointment, error) {
	var out models.Appointment
	if err := c.do(ctx, http.MethodPost, "/api/appointments", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAppointmentWithPayment returns the appointment and payment ids.
func (c *Client) CreateAppointmentWithPayment(ctx context.Context, in AppointmentWithPaymentInput) (uuid.UUID, uuid.UUID, error) {
	var out struct {
		AppointmentID uuid.UUID `json:"appointment_id"`
		PaymentID     uuid.UUID `json:"payment_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/appointments/with-payment", nil, in, &out); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return out.AppointmentID, out.PaymentID, nil
}

func (c *Client) UpdateAppointment(ctx context.Context, id uuid.UUID, patch AppointmentPatch) (*models.Appointment, error) {
	var out models.Appointment
	if err := c.do(ctx, http.MethodPatch, "/api/appointments/"+id.String(), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/appointments/"+id.String(), nil, nil, nil)
}

func (c *Client) CancelAppointment(ctx context.Context, id uuid.UUID, reason string) error {
	body := map[string]string{"reason": reason}
	return c.do(ctx, http.MethodPatch, "/api/appointments/"+id.String()+"/cancel", nil, body, nil)
}

func (c *Client) ConfirmAppointment(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPatch, "/api/appointments/"+id.String()+"/confirm", nil, nil, nil)
}

func (c *Client) CompleteAppointment(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPatch, "/api/appointments/"+id.String()+"/complete", nil, nil, nil)
}

func (c *Client) SearchAppointments(ctx context.Context, f AppointmentSearch) ([]dto.AppointmentListDTO, error) {
	clientID := ""
	if f.ClientID != nil {
		clientID = f.ClientID.String()
	}
	q := query(
		"date_from", f.DateFrom,
		"date_to", f.DateTo,
		"status", f.Status,
		"client_id", clientID,
		"service_name", f.ServiceName,
		"limit", itoa(f.Limit),
		"offset", itoa(f.Offset),
	)
	return getList[dto.AppointmentListDTO](ctx, c, "/api/appointments/search", q)
}

// DailySchedule lists a date's active appointments; empty means today.
func (c *Client) DailySchedule(ctx context.Context, date string) ([]dto.AppointmentListDTO, error) {
	return getList[dto.AppointmentListDTO](ctx, c, "/api/appointments/schedule", query("date", date))
}
