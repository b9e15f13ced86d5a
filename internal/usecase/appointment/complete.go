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

type CompleteAppointment struct {
	deps
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *CompleteAppointment {
	return &CompleteAppointment{deps: newDeps(repo, audit, feed)}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor uuid.UUID,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ap, err := uc.load(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	entry := historyEntry(
		ap.ClientID,
		fmt.Sprintf("Appointment completed: %s", ap.ServiceName),
		now,
		"",
	)
	if err := uc.repo.ChangeStatus(ctx, ap, entry); err != nil {
		return nil, err
	}

	uc.changed(ctx, actor, "appointment_completed", ap, realtime.Update, nil)
	return ap, nil
}
