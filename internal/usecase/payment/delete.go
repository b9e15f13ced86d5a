package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/payment"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

type DeletePayment struct {
	deps
}

func NewDeletePayment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *DeletePayment {
	return &DeletePayment{deps: newDeps(repo, audit, feed)}
}

func (uc *DeletePayment) Execute(ctx context.Context, actor uuid.UUID, id uuid.UUID) error {
	p, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, p); err != nil {
		return err
	}

	uc.changed(ctx, actor, "payment_deleted", p, realtime.Delete, map[string]any{
		"value":  p.Value.StringFixed(2),
		"status": p.Status,
	})
	return nil
}
