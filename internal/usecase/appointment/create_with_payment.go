package appointment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

type CreateWithPaymentInput struct {
	CreateAppointmentInput

	// DueDate defaults to the appointment date.
	DueDate      string
	PaymentNotes string
}

type CreateWithPaymentOutput struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	PaymentID     uuid.UUID `json:"payment_id"`
}

// CreateAppointmentWithPayment books an appointment and bills it in a
// single transaction.
type CreateAppointmentWithPayment struct {
	deps
}

func NewCreateAppointmentWithPayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *CreateAppointmentWithPayment {
	return &CreateAppointmentWithPayment{deps: newDeps(repo, audit, feed)}
}

func (uc *CreateAppointmentWithPayment) Execute(
	ctx context.Context,
	actor uuid.UUID,
	in CreateWithPaymentInput,
) (*CreateWithPaymentOutput, error) {

	ap, err := uc.build(ctx, in.CreateAppointmentInput)
	if err != nil {
		return nil, err
	}
	if !ap.Value.GreaterThan(decimal.Zero) {
		return nil, httperr.ErrBusiness("invalid_value")
	}

	due := in.DueDate
	if due == "" {
		due = ap.AppointmentDate
	}
	if !timezone.ValidDate(due) {
		return nil, httperr.ErrBusiness("invalid_due_date")
	}

	pay := &models.Payment{
		ClientID:    ap.ClientID,
		ServiceName: ap.ServiceName,
		Value:       ap.Value,
		DueDate:     due,
		Status:      models.PaymentPending,
		Notes:       strings.TrimSpace(in.PaymentNotes),
	}

	entry := historyEntry(
		ap.ClientID,
		fmt.Sprintf("Appointment scheduled with payment: %s on %s at %s (%s)",
			ap.ServiceName, ap.AppointmentDate, ap.AppointmentTime, ap.Value.StringFixed(2)),
		uc.now(),
		"",
	)
	if err := uc.repo.CreateWithPayment(ctx, ap, pay, entry); err != nil {
		return nil, err
	}

	uc.changed(ctx, actor, "appointment_created", ap, realtime.Insert, map[string]any{
		"payment_id": pay.ID,
	})
	realtime.Emit(ctx, uc.feed, realtime.TablePayments, realtime.Insert, pay.ID)

	return &CreateWithPaymentOutput{AppointmentID: ap.ID, PaymentID: pay.ID}, nil
}
