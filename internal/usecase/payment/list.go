package payment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crm-manager/internal/domain/payment"
	"github.com/BruksfildServices01/crm-manager/internal/dto"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

type Queries struct {
	deps
}

func NewQueries(repo domain.Repository) *Queries {
	return &Queries{deps: newDeps(repo, nil, nil)}
}

func (q *Queries) List(ctx context.Context) ([]models.Payment, error) {
	return q.repo.List(ctx)
}

func (q *Queries) Get(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return q.load(ctx, id)
}

func (q *Queries) Search(ctx context.Context, f domain.SearchFilters) ([]dto.PaymentListDTO, error) {
	if f.Status != "" && !domain.IsValidStatus(f.Status) {
		return nil, httperr.ErrBusiness("invalid_status")
	}
	for _, d := range []string{f.DateFrom, f.DateTo} {
		if d != "" && !timezone.ValidDate(d) {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}
	if f.Limit <= 0 {
		f.Limit = 50
	}
	return q.repo.Search(ctx, f, q.today())
}
