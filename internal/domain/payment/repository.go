package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/dto"
	"github.com/BruksfildServices01/crm-manager/internal/models"
)

type SearchFilters struct {
	Status      string
	ClientID    *uuid.UUID
	DateFrom    string
	DateTo      string
	OverdueOnly bool
	Limit       int
	Offset      int
}

type Repository interface {
	GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error)

	List(ctx context.Context) ([]models.Payment, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	Search(ctx context.Context, f SearchFilters, today string) ([]dto.PaymentListDTO, error)

	// Writes refresh the aggregates of every client they touch.
	Create(ctx context.Context, p *models.Payment) error
	Update(ctx context.Context, p *models.Payment, previousClientID uuid.UUID) error
	Delete(ctx context.Context, p *models.Payment) error
	MarkPaid(ctx context.Context, p *models.Payment, entry *models.ClientHistory) error
	SetCheckoutURL(ctx context.Context, id uuid.UUID, url string) error

	// MarkOverdue flips Pending rows due before today and returns their ids.
	MarkOverdue(ctx context.Context, today string) ([]uuid.UUID, error)
}
