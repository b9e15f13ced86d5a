package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/crm-manager/internal/models"
)

// Empty fields do not filter. Date bounds are [From, To).

type ClientFilter struct {
	Status         string
	RegisteredFrom string
	RegisteredTo   string
}

type AppointmentFilter struct {
	Status   string
	DateFrom string
	DateTo   string
}

type PaymentFilter struct {
	Status   string
	DueFrom  string
	DueTo    string
	PaidFrom string
	PaidTo   string
}

// Bucket is one group of a distribution.
type Bucket struct {
	Key   string          `gorm:"column:bucket_key"`
	Count int64           `gorm:"column:bucket_count"`
	Total decimal.Decimal `gorm:"column:bucket_total"`
}

// ClientSummary is the per-client line of the reports page.
type ClientSummary struct {
	ClientID     string          `json:"client_id"`
	Name         string          `json:"name"`
	Status       string          `json:"status"`
	Appointments int64           `json:"appointments"`
	PaidTotal    decimal.Decimal `json:"paid_total"`
}

type Repository interface {
	CountClients(ctx context.Context, f ClientFilter) (int64, error)
	CountAppointments(ctx context.Context, f AppointmentFilter) (int64, error)
	CountAppointmentClients(ctx context.Context, f AppointmentFilter) (int64, error)
	SumPayments(ctx context.Context, f PaymentFilter) (decimal.Decimal, error)
	RecentClients(ctx context.Context, limit int) ([]models.Client, error)

	ClientsByOrigin(ctx context.Context) ([]Bucket, error)
	AppointmentsByStatus(ctx context.Context) ([]Bucket, error)
	PaidByMethod(ctx context.Context) ([]Bucket, error)
	ClientSummaries(ctx context.Context) ([]ClientSummary, error)
}
