package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	"github.com/BruksfildServices01/crm-manager/internal/checkout"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/payment"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

// CreateCheckoutLink attaches a hosted payment link to an unpaid payment.
type CreateCheckoutLink struct {
	deps
	gateway checkout.Gateway
}

func NewCreateCheckoutLink(
	repo domain.Repository,
	gateway checkout.Gateway,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *CreateCheckoutLink {
	return &CreateCheckoutLink{deps: newDeps(repo, audit, feed), gateway: gateway}
}

func (uc *CreateCheckoutLink) Execute(
	ctx context.Context,
	actor uuid.UUID,
	id uuid.UUID,
) (*models.Payment, error) {

	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == models.PaymentPaid {
		return nil, httperr.ErrBusiness("already_paid")
	}

	item := checkout.Item{
		PaymentID: p.ID,
		Title:     p.ServiceName,
		Amount:    p.Value,
	}
	if p.Client != nil {
		item.Description = p.Client.Name
	}

	url, err := uc.gateway.CreateLink(ctx, item)
	if errors.Is(err, checkout.ErrDisabled) {
		return nil, httperr.ErrBusiness("checkout_unavailable")
	}
	if err != nil {
		return nil, err
	}

	if err := uc.repo.SetCheckoutURL(ctx, p.ID, url); err != nil {
		return nil, err
	}
	p.CheckoutURL = url

	uc.changed(ctx, actor, "payment_checkout_created", p, realtime.Update, nil)
	return p, nil
}
