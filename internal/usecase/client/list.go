package client

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/crm-manager/internal/domain/client"
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

// List returns client details, most recently contacted first.
func (q *Queries) List(ctx context.Context, query string) ([]dto.ClientListDTO, error) {
	clients, err := q.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	return q.details(clients), nil
}

func (q *Queries) Get(ctx context.Context, id uuid.UUID) (*dto.ClientListDTO, error) {
	c, err := q.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := q.details([]models.Client{*c})
	return &out[0], nil
}

func (q *Queries) Search(ctx context.Context, f domain.SearchFilters) ([]dto.ClientListDTO, error) {
	if f.Status != "" && !domain.IsValidStatus(f.Status) {
		return nil, httperr.ErrBusiness("invalid_status")
	}
	if f.Origin != "" && !domain.IsValidOrigin(f.Origin) {
		return nil, httperr.ErrBusiness("invalid_origin")
	}
	for _, d := range []string{f.DateFrom, f.DateTo} {
		if d != "" && !timezone.ValidDate(d) {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}
	f.Normalize()

	clients, err := q.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	return q.details(clients), nil
}

func (q *Queries) History(ctx context.Context, id uuid.UUID) ([]models.ClientHistory, error) {
	if _, err := q.load(ctx, id); err != nil {
		return nil, err
	}
	return q.repo.History(ctx, id)
}

func (q *Queries) details(clients []models.Client) []dto.ClientListDTO {
	today := q.now()
	out := make([]dto.ClientListDTO, 0, len(clients))
	for _, c := range clients {
		out = append(out, dto.ClientListDTO{
			Client:        c,
			ContactStatus: domain.ContactStatus(c.LastContact, today),
		})
	}
	return out
}
