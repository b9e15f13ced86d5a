package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/client"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

// UpdateClientInput carries a partial update; nil fields are kept.
type UpdateClientInput struct {
	Name   *string
	Phone  *string
	Email  *string
	Status *string
	Origin *string
	Notes  *string
}

type UpdateClient struct {
	deps
}

func NewUpdateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *UpdateClient {
	return &UpdateClient{deps: newDeps(repo, audit, feed)}
}

func (uc *UpdateClient) Execute(
	ctx context.Context,
	actor uuid.UUID,
	id uuid.UUID,
	in UpdateClientInput,
) (*models.Client, error) {

	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&c.Name, in.Name)
	set(&c.Phone, in.Phone)
	set(&c.Email, in.Email)
	set(&c.Status, in.Status)
	set(&c.Origin, in.Origin)
	set(&c.Notes, in.Notes)

	domain.Normalize(c)
	if err := domain.Validate(c); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	uc.changed(ctx, actor, "client_updated", c.ID, realtime.Update, nil)
	return c, nil
}
