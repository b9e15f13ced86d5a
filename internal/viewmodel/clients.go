package viewmodel

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/apiclient"
	"github.com/BruksfildServices01/crm-manager/internal/dto"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

type ClientsAPI interface {
	ListClients(ctx context.Context) ([]dto.ClientListDTO, error)
	CreateClient(ctx context.Context, in apiclient.ClientInput) (*models.Client, error)
	UpdateClient(ctx context.Context, id uuid.UUID, patch apiclient.ClientPatch) (*models.Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
	SearchClients(ctx context.Context, f apiclient.ClientSearch) ([]dto.ClientListDTO, error)
}

type Clients struct {
	*Collection[dto.ClientListDTO]
	api ClientsAPI
}

func NewClients(api ClientsAPI) *Clients {
	return &Clients{
		Collection: newCollection(
			realtime.TableClients,
			api.ListClients,
			func(c dto.ClientListDTO) uuid.UUID { return c.ID },
			func(c dto.ClientListDTO) []string { return []string{c.Name, c.Phone, c.Email} },
		),
		api: api,
	}
}

func (v *Clients) Create(ctx context.Context, in apiclient.ClientInput) bool {
	return v.Mutate(ctx, func(ctx context.Context) error {
		_, err := v.api.CreateClient(ctx, in)
		return err
	})
}

func (v *Clients) Update(ctx context.Context, id uuid.UUID, patch apiclient.ClientPatch) bool {
	return v.Mutate(ctx, func(ctx context.Context) error {
		_, err := v.api.UpdateClient(ctx, id, patch)
		return err
	})
}

func (v *Clients) Delete(ctx context.Context, id uuid.UUID) bool {
	return v.Mutate(ctx, func(ctx context.Context) error {
		return v.api.DeleteClient(ctx, id)
	})
}

// Search runs the server-side search; it does not replace the loaded items.
func (v *Clients) Search(ctx context.Context, f apiclient.ClientSearch) ([]dto.ClientListDTO, bool) {
	return call(v.Collection, ctx, func(ctx context.Context) ([]dto.ClientListDTO, error) {
		return v.api.SearchClients(ctx, f)
	})
}
