package checkout

import (
	"context"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

const currencyBRL = "BRL"

type MercadoPago struct {
	client preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{client: preference.NewClient(cfg)}, nil
}

func (m *MercadoPago) CreateLink(ctx context.Context, item Item) (string, error) {
	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:          item.PaymentID.String(),
				Title:       item.Title,
				Description: item.Description,
				CurrencyID:  currencyBRL,
				Quantity:    1,
				UnitPrice:   item.Amount.InexactFloat64(),
			},
		},
		ExternalReference: item.PaymentID.String(),
	}

	res, err := m.client.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("mercadopago preference: %w", err)
	}
	return res.InitPoint, nil
}

var _ Gateway = (*MercadoPago)(nil)
