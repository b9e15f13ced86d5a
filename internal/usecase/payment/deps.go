package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/payment"
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

func (d deps) today() string {
	return timezone.Date(d.now())
}

func (d deps) load(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	p, err := d.repo.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("payment_not_found")
	}
	return p, err
}

// checkRefs verifies the client exists and that a linked appointment
// belongs to it.
func (d deps) checkRefs(ctx context.Context, clientID uuid.UUID, appointmentID *uuid.UUID) error {
	if _, err := d.repo.GetClient(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("client_not_found")
		}
		return err
	}
	if appointmentID == nil {
		return nil
	}

	ap, err := d.repo.GetAppointment(ctx, *appointmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return err
	}
	if ap.ClientID != clientID {
		return httperr.ErrBusiness("appointment_client_mismatch")
	}
	return nil
}

func (d deps) changed(ctx context.Context, actor uuid.UUID, action string, p *models.Payment, typ realtime.EventType, meta any) {
	realtime.Emit(ctx, d.feed, realtime.TablePayments, typ, p.ID)
	realtime.Emit(ctx, d.feed, realtime.TableClients, realtime.Update, p.ClientID)

	d.audit.Dispatch(audit.Event{
		UserID:   audit.Actor(actor),
		Action:   action,
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: meta,
	})
}
