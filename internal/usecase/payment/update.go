package payment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/payment"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

// UpdatePaymentInput carries a partial update. Settling a payment goes
// through MarkAsPaid.
type UpdatePaymentInput struct {
	ClientID      *uuid.UUID
	AppointmentID *uuid.UUID
	ServiceName   *string
	Value         *decimal.Decimal
	DueDate       *string
	Notes         *string
}

type UpdatePayment struct {
	deps
}

func NewUpdatePayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *UpdatePayment {
	return &UpdatePayment{deps: newDeps(repo, audit, feed)}
}

func (uc *UpdatePayment) Execute(
	ctx context.Context,
	actor uuid.UUID,
	id uuid.UUID,
	in UpdatePaymentInput,
) (*models.Payment, error) {

	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := p.ClientID

	if in.ClientID != nil {
		p.ClientID = *in.ClientID
		p.Client = nil
	}
	if in.AppointmentID != nil {
		if *in.AppointmentID == uuid.Nil {
			p.AppointmentID = nil
		} else {
			p.AppointmentID = in.AppointmentID
		}
	}
	if in.ClientID != nil || in.AppointmentID != nil {
		if err := uc.checkRefs(ctx, p.ClientID, p.AppointmentID); err != nil {
			return nil, err
		}
	}
	if in.ServiceName != nil {
		p.ServiceName = strings.TrimSpace(*in.ServiceName)
	}
	if in.Value != nil {
		p.Value = *in.Value
	}
	if in.DueDate != nil {
		p.DueDate = *in.DueDate
		// A new due date reopens the overdue check.
		if p.Status == models.PaymentOverdue && !domain.IsOverdue(models.Payment{Status: models.PaymentPending, DueDate: p.DueDate}, uc.today()) {
			p.Status = models.PaymentPending
		}
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}

	if err := domain.Validate(p); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, p, previous); err != nil {
		return nil, err
	}

	uc.changed(ctx, actor, "payment_updated", p, realtime.Update, nil)
	if previous != p.ClientID {
		realtime.Emit(ctx, uc.feed, realtime.TableClients, realtime.Update, previous)
	}
	return p, nil
}
