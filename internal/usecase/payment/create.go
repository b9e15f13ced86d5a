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

type CreatePaymentInput struct {
	ClientID      uuid.UUID
	AppointmentID *uuid.UUID
	ServiceName   string
	Value         decimal.Decimal
	DueDate       string
	Status        string
	PaymentMethod *string
	PaymentDate   *string
	Notes         string
}

type CreatePayment struct {
	deps
}

func NewCreatePayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *CreatePayment {
	return &CreatePayment{deps: newDeps(repo, audit, feed)}
}

func (uc *CreatePayment) Execute(
	ctx context.Context,
	actor uuid.UUID,
	in CreatePaymentInput,
) (*models.Payment, error) {

	if err := uc.checkRefs(ctx, in.ClientID, in.AppointmentID); err != nil {
		return nil, err
	}

	p := &models.Payment{
		ClientID:      in.ClientID,
		AppointmentID: in.AppointmentID,
		ServiceName:   strings.TrimSpace(in.ServiceName),
		Value:         in.Value,
		DueDate:       in.DueDate,
		Status:        in.Status,
		PaymentMethod: in.PaymentMethod,
		PaymentDate:   in.PaymentDate,
		Notes:         strings.TrimSpace(in.Notes),
	}
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	if p.Status == models.PaymentPaid && (p.PaymentDate == nil || *p.PaymentDate == "") {
		today := uc.today()
		p.PaymentDate = &today
	}

	if err := domain.Validate(p); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.changed(ctx, actor, "payment_created", p, realtime.Insert, nil)
	return p, nil
}
