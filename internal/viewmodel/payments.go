package viewmodel

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/crm-manager/internal/apiclient"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/payment"
	"github.com/BruksfildServices01/crm-manager/internal/dto"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

// DefaultOverdueInterval is how often RunOverdue asks the server to flag
// past-due payments.
const DefaultOverdueInterval = time.Hour

type PaymentsAPI interface {
	ListPayments(ctx context.Context) ([]models.Payment, error)
	CreatePayment(ctx context.Context, in apiclient.PaymentInput) (*models.Payment, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, patch apiclient.PaymentPatch) (*models.Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error
	MarkAsPaid(ctx context.Context, id uuid.UUID, method, date string) error
	SearchPayments(ctx context.Context, f apiclient.PaymentSearch) ([]dto.PaymentListDTO, error)
	RecomputeOverdue(ctx context.Context) (int, error)
}

// PaymentStats sums the loaded payments per status.
type PaymentStats struct {
	domain.Stats
	TotalRevenue  decimal.Decimal
	TotalPayments int
}

type Payments struct {
	*Collection[models.Payment]
	api PaymentsAPI
	now func() time.Time
}

func NewPayments(api PaymentsAPI) *Payments {
	return &Payments{
		Collection: newCollection(
			realtime.TablePayments,
			api.ListPayments,
			func(p models.Payment) uuid.UUID { return p.ID },
			func(p models.Payment) []string {
				method := ""
				if p.PaymentMethod != nil {
					method = *p.PaymentMethod
				}
				return []string{p.ServiceName, p.Status, method, p.Notes, clientName(p.Client)}
			},
		),
		api: api,
		now: timezone.Now,
	}
}

func (v *Payments) ByClient(clientID uuid.UUID) []models.Payment {
	return v.Where(func(p models.Payment) bool { return p.ClientID == clientID })
}

// Overdue lists payments flagged Overdue and Pending ones already past due.
func (v *Payments) Overdue() []models.Payment {
	today := timezone.Date(v.now())
	return v.Where(func(p models.Payment) bool { return domain.IsOverdue(p, today) })
}

func (v *Payments) Stats() PaymentStats {
	items := v.Items()
	s := PaymentStats{Stats: domain.Summarize(items), TotalPayments: len(items)}
	s.TotalRevenue = s.TotalPaid.Add(s.TotalPending).Add(s.TotalOverdue)
	return s
}

func (v *Payments) Create(ctx context.Context, in apiclient.PaymentInput) bool {
	return v.Mutate(ctx, func(ctx context.Context) error {
		_, err := v.api.CreatePayment(ctx, in)
		return err
	})
}

func (v *Payments) Update(ctx context.Context, id uuid.UUID, patch apiclient.PaymentPatch) bool {
	return v.Mutate(ctx, func(ctx context.Context) error {
		_, err := v.api.UpdatePayment(ctx, id, patch)
		return err
	})
}

func (v *Payments) Delete(ctx context.Context, id uuid.UUID) bool {
	return v.Mutate(ctx, func(ctx context.Context) error {
		return v.api.DeletePayment(ctx, id)
	})
}

// MarkAsPaid settles a payment; an empty date means today.
func (v *Payments) MarkAsPaid(ctx context.Context, id uuid.UUID, method, date string) bool {
	if date == "" {
		date = timezone.Date(v.now())
	}
	return v.Mutate(ctx, func(ctx context.Context) error {
		return v.api.MarkAsPaid(ctx, id, method, date)
	})
}

func (v *Payments) Search(ctx context.Context, f apiclient.PaymentSearch) ([]dto.PaymentListDTO, bool) {
	return call(v.Collection, ctx, func(ctx context.Context) ([]dto.PaymentListDTO, error) {
		return v.api.SearchPayments(ctx, f)
	})
}

func (v *Payments) RecomputeOverdue(ctx context.Context) bool {
	return v.Mutate(ctx, func(ctx context.Context) error {
		_, err := v.api.RecomputeOverdue(ctx)
		return err
	})
}

// RunOverdue recomputes overdue payments now and then every interval until
// ctx ends. onRun, when set, sees the outcome of every pass.
func (v *Payments) RunOverdue(ctx context.Context, interval time.Duration, onRun func(ok bool)) {
	if interval <= 0 {
		interval = DefaultOverdueInterval
	}

	pass := func() {
		ok := v.RecomputeOverdue(ctx)
		if !ok {
			log.Printf("overdue: %s", v.Err())
		}
		if onRun != nil {
			onRun(ok)
		}
	}

	pass()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pass()
		}
	}
}
