package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crm-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/crm-manager/internal/dto"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

// Queries groups the read-only appointment operations.
type Queries struct {
	repo domain.Repository
}

func NewQueries(repo domain.Repository) *Queries {
	return &Queries{repo: repo}
}

func (q *Queries) List(ctx context.Context) ([]models.Appointment, error) {
	return q.repo.List(ctx)
}

func (q *Queries) Get(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	return deps{repo: q.repo}.load(ctx, id)
}

func (q *Queries) Search(ctx context.Context, f domain.SearchFilters) ([]dto.AppointmentListDTO, error) {
	if f.Status != "" && !domain.IsValid(domain.Status(f.Status)) {
		return nil, httperr.ErrBusiness("invalid_status")
	}
	if f.Limit <= 0 {
		f.Limit = 50
	}
	return q.repo.Search(ctx, f)
}

// DailySchedule lists the active appointments of a date, today when empty.
func (q *Queries) DailySchedule(ctx context.Context, date string) ([]dto.AppointmentListDTO, error) {
	if date == "" {
		date = timezone.Date(timezone.Now())
	}
	if !timezone.ValidDate(date) {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	return q.repo.ListForDate(ctx, date)
}
