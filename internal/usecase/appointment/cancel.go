package appointment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

type CancelAppointment struct {
	deps
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *CancelAppointment {
	return &CancelAppointment{deps: newDeps(repo, audit, feed)}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor uuid.UUID,
	appointmentID uuid.UUID,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.load(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := domain.Cancel(ap, reason, now); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Appointment cancelled: %s on %s", ap.ServiceName, ap.AppointmentDate)
	if ap.CancelReason != "" {
		description += " (" + ap.CancelReason + ")"
	}
	if err := uc.repo.ChangeStatus(ctx, ap, historyEntry(ap.ClientID, description, now, "")); err != nil {
		return nil, err
	}

	uc.changed(ctx, actor, "appointment_cancelled", ap, realtime.Update, map[string]any{
		"reason": ap.CancelReason,
	})
	return ap, nil
}
