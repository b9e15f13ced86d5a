package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/catalog"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

type CreateServiceInput struct {
	Name            string
	Description     string
	DefaultPrice    decimal.Decimal
	DurationMinutes int
}

// UpdateServiceInput carries a partial update; nil fields are kept.
type UpdateServiceInput struct {
	Name            *string
	Description     *string
	DefaultPrice    *decimal.Decimal
	DurationMinutes *int
	Active          *bool
}

// Services manages the catalog used to prefill appointments.
type Services struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	feed  realtime.Publisher
}

func NewServices(repo domain.Repository, audit *audit.Dispatcher, feed realtime.Publisher) *Services {
	return &Services{repo: repo, audit: audit, feed: feed}
}

func (s *Services) List(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *Services) Create(ctx context.Context, actor uuid.UUID, in CreateServiceInput) (*models.Service, error) {
	if in.DurationMinutes == 0 {
		in.DurationMinutes = 60
	}

	svc := &models.Service{
		Name:            in.Name,
		Description:     in.Description,
		DefaultPrice:    in.DefaultPrice,
		DurationMinutes: in.DurationMinutes,
		Active:          true,
	}
	if err := domain.Validate(svc); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}

	s.changed(ctx, actor, "service_created", svc.ID, realtime.Insert)
	return svc, nil
}

func (s *Services) Update(ctx context.Context, actor uuid.UUID, id uuid.UUID, in UpdateServiceInput) (*models.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		svc.Name = *in.Name
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.DefaultPrice != nil {
		svc.DefaultPrice = *in.DefaultPrice
	}
	if in.DurationMinutes != nil {
		svc.DurationMinutes = *in.DurationMinutes
	}
	if in.Active != nil {
		svc.Active = *in.Active
	}

	if err := domain.Validate(svc); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}

	s.changed(ctx, actor, "service_updated", svc.ID, realtime.Update)
	return svc, nil
}

func (s *Services) changed(ctx context.Context, actor uuid.UUID, action string, id uuid.UUID, typ realtime.EventType) {
	realtime.Emit(ctx, s.feed, realtime.TableServices, typ, id)

	s.audit.Dispatch(audit.Event{
		UserID:   audit.Actor(actor),
		Action:   action,
		Entity:   "service",
		EntityID: &id,
	})
}
