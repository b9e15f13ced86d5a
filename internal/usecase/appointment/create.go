package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID    uuid.UUID
	ServiceID   *uuid.UUID
	ServiceName string
	Date        string
	Time        string
	Value       *decimal.Decimal
	Status      string
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	deps
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *CreateAppointment {
	return &CreateAppointment{deps: newDeps(repo, audit, feed)}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor uuid.UUID,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.build(ctx, in)
	if err != nil {
		return nil, err
	}

	entry := historyEntry(
		ap.ClientID,
		fmt.Sprintf("Appointment scheduled: %s on %s at %s", ap.ServiceName, ap.AppointmentDate, ap.AppointmentTime),
		uc.now(),
		"",
	)
	if err := uc.repo.Create(ctx, ap, entry); err != nil {
		return nil, err
	}

	uc.changed(ctx, actor, "appointment_created", ap, realtime.Insert, nil)
	return ap, nil
}

// build resolves the client and catalog references and validates the row.
func (d deps) build(ctx context.Context, in CreateAppointmentInput) (*models.Appointment, error) {

	// --------------------------------------------------
	// Client
	// --------------------------------------------------
	if _, err := d.client(ctx, in.ClientID); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		ClientID:        in.ClientID,
		ServiceID:       in.ServiceID,
		ServiceName:     strings.TrimSpace(in.ServiceName),
		AppointmentDate: in.Date,
		AppointmentTime: in.Time,
		Status:          string(domain.InitialStatus()),
		Notes:           strings.TrimSpace(in.Notes),
	}
	if in.Status != "" {
		ap.Status = in.Status
	}
	if in.Value != nil {
		ap.Value = *in.Value
	}

	// --------------------------------------------------
	// Catalog defaults
	// --------------------------------------------------
	if in.ServiceID != nil {
		svc, err := d.repo.GetService(ctx, *in.ServiceID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		if err != nil {
			return nil, err
		}
		if ap.ServiceName == "" {
			ap.ServiceName = svc.Name
		}
		if in.Value == nil {
			ap.Value = svc.DefaultPrice
		}
	}

	// Cancelled and Completed are reached through the status procedures only.
	if !domain.IsOpen(domain.Status(ap.Status)) {
		return nil, httperr.ErrBusiness("invalid_status")
	}
	if err := domain.Validate(ap); err != nil {
		return nil, err
	}
	return ap, nil
}
