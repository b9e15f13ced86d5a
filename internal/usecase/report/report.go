package report

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/crm-manager/internal/domain/dashboard"
	"github.com/BruksfildServices01/crm-manager/internal/models"
)

type Slice struct {
	Name       string          `json:"name"`
	Count      int64           `json:"count"`
	Total      decimal.Decimal `json:"total"`
	Percentage int             `json:"percentage"`
}

type Distributions struct {
	ClientOrigins     []Slice `json:"client_origins"`
	AppointmentStatus []Slice `json:"appointment_status"`
	PaymentMethods    []Slice `json:"payment_methods"`
}

type Reports struct {
	repo domain.Repository
}

func New(repo domain.Repository) *Reports {
	return &Reports{repo: repo}
}

// Distributions returns every known origin and status, zero counts
// included, and the payment methods actually used for Paid payments.
func (r *Reports) Distributions(ctx context.Context) (*Distributions, error) {
	origins, err := r.repo.ClientsByOrigin(ctx)
	if err != nil {
		return nil, err
	}
	statuses, err := r.repo.AppointmentsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	methods, err := r.repo.PaidByMethod(ctx)
	if err != nil {
		return nil, err
	}

	return &Distributions{
		ClientOrigins: slices(origins, []string{
			models.OriginReferral, models.OriginSocialMedia, models.OriginWhatsApp, models.OriginOther,
		}, false),
		AppointmentStatus: slices(statuses, []string{
			models.AppointmentScheduled, models.AppointmentConfirmed, models.AppointmentCompleted, models.AppointmentCancelled,
		}, false),
		PaymentMethods: slices(methods, []string{
			models.MethodPIX, models.MethodBoleto, models.MethodCard, models.MethodTransfer, models.MethodCash,
		}, true),
	}, nil
}

func (r *Reports) Clients(ctx context.Context) ([]domain.ClientSummary, error) {
	return r.repo.ClientSummaries(ctx)
}

// slices orders buckets by keys and computes whole-number percentages of
// the grand count. Unknown keys are appended at the end.
func slices(buckets []domain.Bucket, keys []string, dropZero bool) []Slice {
	byKey := make(map[string]domain.Bucket, len(buckets))
	var total int64
	for _, b := range buckets {
		byKey[b.Key] = b
		total += b.Count
	}

	out := make([]Slice, 0, len(keys))
	add := func(key string, b domain.Bucket) {
		if dropZero && b.Count == 0 {
			return
		}
		out = append(out, Slice{
			Name:       key,
			Count:      b.Count,
			Total:      b.Total,
			Percentage: Percent(b.Count, total),
		})
	}

	known := make(map[string]bool, len(keys))
	for _, k := range keys {
		known[k] = true
		add(k, byKey[k])
	}
	for _, b := range buckets {
		if !known[b.Key] {
			add(b.Key, b)
		}
	}
	return out
}

// Percent rounds part/total to a whole percentage, half away from zero.
func Percent(part, total int64) int {
	if total == 0 {
		return 0
	}
	return int(decimal.NewFromInt(part * 100).Div(decimal.NewFromInt(total)).Round(0).IntPart())
}
