package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

// deps is shared by every appointment use case.
type deps struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	feed  realtime.Publisher
	now   func() time.Time
}

func newDeps(repo domain.Repository, audit *audit.Dispatcher, feed realtime.Publisher) deps {
	return deps{repo: repo, audit: audit, feed: feed, now: timezone.Now}
}

func (d deps) load(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	ap, err := d.repo.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return ap, err
}

func (d deps) client(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	c, err := d.repo.GetClient(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("client_not_found")
	}
	return c, err
}

// changed publishes the feed events and the audit entry of a committed write.
func (d deps) changed(ctx context.Context, actor uuid.UUID, action string, ap *models.Appointment, typ realtime.EventType, meta any) {
	realtime.Emit(ctx, d.feed, realtime.TableAppointments, typ, ap.ID)
	realtime.Emit(ctx, d.feed, realtime.TableClients, realtime.Update, ap.ClientID)

	d.audit.Dispatch(audit.Event{
		UserID:   audit.Actor(actor),
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: meta,
	})
}

// paymentsChanged signals payment watchers when a write rewrote linked
// payment rows. The feed carries no record id for bulk changes.
func (d deps) paymentsChanged(ctx context.Context, n int64) {
	if n > 0 {
		realtime.Emit(ctx, d.feed, realtime.TablePayments, realtime.Update, uuid.Nil)
	}
}

func historyEntry(clientID uuid.UUID, description string, now time.Time, meta string) *models.ClientHistory {
	return &models.ClientHistory{
		ClientID:        clientID,
		InteractionType: models.InteractionAppointment,
		Description:     description,
		InteractionDate: now,
		Metadata:        meta,
	}
}
