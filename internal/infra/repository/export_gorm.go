package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-manager/internal/export"
	"github.com/BruksfildServices01/crm-manager/internal/models"
)

// ExportSource reads full collections, in list order, for CSV export.
type ExportSource struct {
	clients      *ClientGormRepository
	appointments *AppointmentGormRepository
	payments     *PaymentGormRepository
}

func NewExportSource(db *gorm.DB) *ExportSource {
	return &ExportSource{
		clients:      NewClientGormRepository(db),
		appointments: NewAppointmentGormRepository(db),
		payments:     NewPaymentGormRepository(db),
	}
}

func (s *ExportSource) Clients(ctx context.Context) ([]models.Client, error) {
	return s.clients.List(ctx, "")
}

func (s *ExportSource) Appointments(ctx context.Context) ([]models.Appointment, error) {
	return s.appointments.List(ctx)
}

func (s *ExportSource) Payments(ctx context.Context) ([]models.Payment, error) {
	return s.payments.List(ctx)
}

var _ export.Source = (*ExportSource)(nil)
