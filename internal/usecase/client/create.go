package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/client"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

type CreateClientInput struct {
	Name   string
	Phone  string
	Email  string
	Status string
	Origin string
	Notes  string
}

type CreateClient struct {
	deps
}

func NewCreateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *CreateClient {
	return &CreateClient{deps: newDeps(repo, audit, feed)}
}

func (uc *CreateClient) Execute(
	ctx context.Context,
	actor uuid.UUID,
	in CreateClientInput,
) (*models.Client, error) {

	now := uc.now()
	today := timezone.Date(now)

	c := &models.Client{
		Name:             in.Name,
		Phone:            in.Phone,
		Email:            in.Email,
		Status:           in.Status,
		Origin:           in.Origin,
		Notes:            in.Notes,
		RegistrationDate: today,
		LastContact:      today,
	}
	domain.Normalize(c)
	if err := domain.Validate(c); err != nil {
		return nil, err
	}

	entry := &models.ClientHistory{
		InteractionType: models.InteractionNote,
		Description:     "Client registered",
		InteractionDate: now,
	}
	if err := uc.repo.Create(ctx, c, entry); err != nil {
		return nil, err
	}

	uc.changed(ctx, actor, "client_created", c.ID, realtime.Insert, nil)
	return c, nil
}
