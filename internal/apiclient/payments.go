package apiclient

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/crm-manager/internal/dto"
	"github.com/BruksfildServices01/crm-manager/internal/models"
)

type PaymentInput struct {
	ClientID      uuid.UUID       `json:"client_id"`
	AppointmentID *uuid.UUID      `json:"appointment_id,omitempty"`
	ServiceName   string          `json:"service_name"`
	Value         decimal.Decimal `json:"value"`
	DueDate       string          `json:"due_date"`
	Status        string          `json:"status,omitempty"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	PaymentDate   *string         `json:"payment_date,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

type PaymentPatch struct {
	ClientID      *uuid.UUID       `json:"client_id,omitempty"`
	AppointmentID *uuid.UUID       `json:"appointment_id,omitempty"`
	ServiceName   *string          `json:"service_name,omitempty"`
	Value         *decimal.Decimal `json:"value,omitempty"`
	DueDate       *string          `json:"due_date,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

type PaymentSearch struct {
	Status      string
	ClientID    *uuid.UUID
	DateFrom    string
	DateTo      string
	OverdueOnly bool
	Limit       int
	Offset      int
}

func (c *Client) ListPayments(ctx context.Context) ([]models.Payment, error) {
	return getList[models.Payment](ctx, c, "/api/payments", nil)
}

func (c *Client) CreatePayment(ctx context.Context, in PaymentInput) (*models.Payment, error) {
	var out models.Payment
	if err := c.do(ctx, http.MethodPost, "/api/payments", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePayment(ctx context.Context, id uuid.UUID, patch PaymentPatch) (*models.Payment, error) {
	var out models.Payment
	if err := c.do(ctx, http.MethodPatch, "/api/payments/"+id.String(), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/payments/"+id.String(), nil, nil, nil)
}

// MarkAsPaid settles a payment; an empty date lets the server use today.
func (c *Client) MarkAsPaid(ctx context.Context, id uuid.UUID, method, date string) error {
	body := map[string]string{"payment_method": method}
	if date != "" {
		body["payment_date"] = date
	}
	return c.do(ctx, http.MethodPatch, "/api/payments/"+id.String()+"/pay", nil, body, nil)
}

func (c *Client) SearchPayments(ctx context.Context, f PaymentSearch) ([]dto.PaymentListDTO, error) {
	clientID, overdue := "", ""
	if f.ClientID != nil {
		clientID = f.ClientID.String()
	}
	if f.OverdueOnly {
		overdue = "true"
	}
	q := query(
		"status", f.Status,
		"client_id", clientID,
		"date_from", f.DateFrom,
		"date_to", f.DateTo,
		"overdue_only", overdue,
		"limit", itoa(f.Limit),
		"offset", itoa(f.Offset),
	)
	return getList[dto.PaymentListDTO](ctx, c, "/api/payments/search", q)
}

// RecomputeOverdue flips past-due pending payments and returns how many.
func (c *Client) RecomputeOverdue(ctx context.Context) (int, error) {
	var out struct {
		Updated int `json:"updated"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/payments/recompute-overdue", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Updated, nil
}

func (c *Client) CheckoutLink(ctx context.Context, id uuid.UUID) (string, error) {
	var out struct {
		URL string `json:"checkout_url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/payments/"+id.String()+"/checkout", nil, nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
