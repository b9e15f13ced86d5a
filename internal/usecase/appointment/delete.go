package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

type DeleteAppointment struct {
	deps
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *DeleteAppointment {
	return &DeleteAppointment{deps: newDeps(repo, audit, feed)}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actor uuid.UUID,
	id uuid.UUID,
) error {

	ap, err := uc.load(ctx, id)
	if err != nil {
		return err
	}

	detached, err := uc.repo.Delete(ctx, ap)
	if err != nil {
		return err
	}

	uc.changed(ctx, actor, "appointment_deleted", ap, realtime.Delete, map[string]any{
		"date": ap.AppointmentDate,
		"time": ap.AppointmentTime,
	})
	uc.paymentsChanged(ctx, detached)
	return nil
}
