package client

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/client"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

// DeleteClient removes a client together with its appointments and payments.
type DeleteClient struct {
	deps
}

func NewDeleteClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *DeleteClient {
	return &DeleteClient{deps: newDeps(repo, audit, feed)}
}

func (uc *DeleteClient) Execute(ctx context.Context, actor uuid.UUID, id uuid.UUID) error {
	err := uc.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("client_not_found")
	}
	if err != nil {
		return err
	}

	uc.changed(ctx, actor, "client_deleted", id, realtime.Delete, nil)
	realtime.Emit(ctx, uc.feed, realtime.TableAppointments, realtime.Delete, id)
	realtime.Emit(ctx, uc.feed, realtime.TablePayments, realtime.Delete, id)
	return nil
}
