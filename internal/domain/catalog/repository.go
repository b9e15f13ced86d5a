package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/models"
)

type Repository interface {
	List(ctx context.Context, activeOnly bool) ([]models.Service, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Service, error)
	Create(ctx context.Context, s *models.Service) error
	Update(ctx context.Context, s *models.Service) error
}
