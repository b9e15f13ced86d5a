package appointment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

// UpdateAppointmentInput carries a partial update; nil fields are kept.
type UpdateAppointmentInput struct {
	ClientID    *uuid.UUID
	ServiceName *string
	Date        *string
	Time        *string
	Value       *decimal.Decimal
	Notes       *string
}

type UpdateAppointment struct {
	deps
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *UpdateAppointment {
	return &UpdateAppointment{deps: newDeps(repo, audit, feed)}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actor uuid.UUID,
	id uuid.UUID,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.IsOpen(domain.Status(ap.Status)) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	previous := ap.ClientID
	if in.ClientID != nil && *in.ClientID != ap.ClientID {
		if _, err := uc.client(ctx, *in.ClientID); err != nil {
			return nil, err
		}
		ap.ClientID = *in.ClientID
		ap.Client = nil
	}
	if in.ServiceName != nil {
		ap.ServiceName = strings.TrimSpace(*in.ServiceName)
	}
	if in.Date != nil {
		ap.AppointmentDate = *in.Date
	}
	if in.Time != nil {
		ap.AppointmentTime = *in.Time
	}
	if in.Value != nil {
		ap.Value = *in.Value
	}
	if in.Notes != nil {
		ap.Notes = strings.TrimSpace(*in.Notes)
	}

	if err := domain.Validate(ap); err != nil {
		return nil, err
	}
	moved, err := uc.repo.Update(ctx, ap, previous)
	if err != nil {
		return nil, err
	}

	uc.changed(ctx, actor, "appointment_updated", ap, realtime.Update, nil)
	if previous != ap.ClientID {
		realtime.Emit(ctx, uc.feed, realtime.TableClients, realtime.Update, previous)
	}
	uc.paymentsChanged(ctx, moved)
	return ap, nil
}
