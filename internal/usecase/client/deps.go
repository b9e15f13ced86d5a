package client

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/client"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

type deps struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	feed  realtime.Publisher
	now   func() time.Time
}

func newDeps(repo domain.Repository, audit *audit.Dispatcher, feed realtime.Publisher) deps {
	return deps{repo: repo, audit: audit, feed: feed, now: timezone.Now}
}

func (d deps) load(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	c, err := d.repo.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("client_not_found")
	}
	return c, err
}

func (d deps) changed(ctx context.Context, actor uuid.UUID, action string, id uuid.UUID, typ realtime.EventType, meta any) {
	realtime.Emit(ctx, d.feed, realtime.TableClients, typ, id)

	d.audit.Dispatch(audit.Event{
		UserID:   audit.Actor(actor),
		Action:   action,
		Entity:   "client",
		EntityID: &id,
		Metadata: meta,
	})
}
