package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/models"
)

type SearchFilters struct {
	Term     string
	Status   string
	Origin   string
	DateFrom string
	DateTo   string
	Limit    int
	Offset   int
}

// Paging defaults for searches.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

func (f *SearchFilters) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

type Repository interface {
	List(ctx context.Context, query string) ([]models.Client, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Client, error)
	Search(ctx context.Context, f SearchFilters) ([]models.Client, error)

	Create(ctx context.Context, c *models.Client, entry *models.ClientHistory) error
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetAvatar(ctx context.Context, id uuid.UUID, url string) error

	History(ctx context.Context, id uuid.UUID) ([]models.ClientHistory, error)
	AddHistory(ctx context.Context, entry *models.ClientHistory) error
}
