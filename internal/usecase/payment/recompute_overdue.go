package payment

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/payment"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

// RecomputeOverdue flips Pending payments past their due date to Overdue.
type RecomputeOverdue struct {
	deps
}

func NewRecomputeOverdue(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *RecomputeOverdue {
	return &RecomputeOverdue{deps: newDeps(repo, audit, feed)}
}

func (uc *RecomputeOverdue) Execute(ctx context.Context, actor uuid.UUID) (int, error) {
	ids, err := uc.repo.MarkOverdue(ctx, uc.today())
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		realtime.Emit(ctx, uc.feed, realtime.TablePayments, realtime.Update, id)
	}
	if len(ids) > 0 {
		log.Printf("payments: %d marked overdue", len(ids))
		uc.audit.Dispatch(audit.Event{
			UserID:   audit.Actor(actor),
			Action:   "payments_overdue",
			Entity:   "payment",
			Metadata: map[string]any{"count": len(ids)},
		})
	}
	return len(ids), nil
}
