package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/dto"
	"github.com/BruksfildServices01/crm-manager/internal/models"
)

type SearchFilters struct {
	DateFrom    string
	DateTo      string
	Status      string
	ClientID    *uuid.UUID
	ServiceName string
	Limit       int
	Offset      int
}

type Repository interface {
	// -------- Client --------
	GetClient(ctx context.Context, id uuid.UUID) (*models.Client, error)
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)

	// -------- Reads --------
	List(ctx context.Context) ([]models.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	Search(ctx context.Context, f SearchFilters) ([]dto.AppointmentListDTO, error)
	ListForDate(ctx context.Context, date string) ([]dto.AppointmentListDTO, error)

	// -------- Writes (each one atomic, aggregates refreshed) --------
	Create(ctx context.Context, ap *models.Appointment, entry *models.ClientHistory) error
	CreateWithPayment(ctx context.Context, ap *models.Appointment, pay *models.Payment, entry *models.ClientHistory) error
	// Update moves linked payments along when the client changes and
	// returns how many payments it touched.
	Update(ctx context.Context, ap *models.Appointment, previousClientID uuid.UUID) (int64, error)
	ChangeStatus(ctx context.Context, ap *models.Appointment, entry *models.ClientHistory) error
	// Delete returns how many payments were detached.
	Delete(ctx context.Context, ap *models.Appointment) (int64, error)

	// -------- Reminders --------
	ListForReminder(ctx context.Context, date string) ([]models.Appointment, error)
	MarkReminded(ctx context.Context, ap *models.Appointment, entry *models.ClientHistory) error
}
