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

type ConfirmAppointment struct {
	deps
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *ConfirmAppointment {
	return &ConfirmAppointment{deps: newDeps(repo, audit, feed)}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	actor uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.load(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Confirm(ap); err != nil {
		return nil, err
	}

	entry := historyEntry(
		ap.ClientID,
		fmt.Sprintf("Appointment confirmed: %s on %s at %s", ap.ServiceName, ap.AppointmentDate, ap.AppointmentTime),
		uc.now(),
		"",
	)
	if err := uc.repo.ChangeStatus(ctx, ap, entry); err != nil {
		return nil, err
	}

	uc.changed(ctx, actor, "appointment_confirmed", ap, realtime.Update, nil)
	return ap, nil
}
