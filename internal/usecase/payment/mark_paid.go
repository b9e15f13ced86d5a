package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/payment"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

type MarkAsPaid struct {
	deps
}

func NewMarkAsPaid(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *MarkAsPaid {
	return &MarkAsPaid{deps: newDeps(repo, audit, feed)}
}

// Execute settles a payment with the given method. An empty date means today.
func (uc *MarkAsPaid) Execute(
	ctx context.Context,
	actor uuid.UUID,
	id uuid.UUID,
	method string,
	date string,
) (*models.Payment, error) {

	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.MarkPaid(p, method, date, uc.today()); err != nil {
		return nil, err
	}

	entry := &models.ClientHistory{
		ClientID:        p.ClientID,
		InteractionType: models.InteractionPayment,
		Description:     fmt.Sprintf("Payment received: %s %s via %s", p.ServiceName, p.Value.StringFixed(2), method),
		InteractionDate: uc.now(),
	}
	if err := uc.repo.MarkPaid(ctx, p, entry); err != nil {
		return nil, err
	}

	uc.changed(ctx, actor, "payment_paid", p, realtime.Update, map[string]any{
		"method": method,
		"date":   *p.PaymentDate,
	})
	return p, nil
}
