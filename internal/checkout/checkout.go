// Package checkout creates hosted payment links for pending payments.
package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrDisabled = errors.New("checkout: provider not configured")

type Item struct {
	PaymentID   uuid.UUID
	Title       string
	Description string
	Amount      decimal.Decimal
}

// Gateway returns the URL where the client pays for item.
type Gateway interface {
	CreateLink(ctx context.Context, item Item) (string, error)
}

// Disabled is used when no provider token is configured.
type Disabled struct{}

func (Disabled) CreateLink(context.Context, Item) (string, error) {
	return "", ErrDisabled
}
