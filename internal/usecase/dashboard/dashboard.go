package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/crm-manager/internal/domain/dashboard"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

// ======================================================
// OUTPUT
// ======================================================

type Stats struct {
	ActiveClients         int64           `json:"active_clients"`
	NewClientsWeek        int64           `json:"new_clients_week"`
	TotalClients          int64           `json:"total_clients"`
	TotalAppointments     int64           `json:"total_appointments"`
	AppointmentsThisWeek  int64           `json:"appointments_this_week"`
	CompletedAppointments int64           `json:"completed_appointments"`
	CompletedThisMonth    int64           `json:"completed_this_month"`
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	RevenueThisMonth      decimal.Decimal `json:"revenue_this_month"`
	PendingRevenue        decimal.Decimal `json:"pending_revenue"`
	OverdueRevenue        decimal.Decimal `json:"overdue_revenue"`
}

type MonthlyRevenue struct {
	Month        string          `json:"month"`
	Revenue      decimal.Decimal `json:"revenue"`
	Appointments int64           `json:"appointments"`
	Clients      int64           `json:"clients"`
}

// Metric is one line of the monthly performance table. Percentage is
// relative to the metric's group total, rounded to two decimals.
type Metric struct {
	Metric     string          `json:"metric"`
	Value      decimal.Decimal `json:"value"`
	Count      int64           `json:"count_value"`
	Percentage float64         `json:"percentage"`
}

// Performance metric names.
const (
	MetricRevenue               = "revenue"
	MetricPendingRevenue        = "pending_revenue"
	MetricOverdueRevenue        = "overdue_revenue"
	MetricCompletedAppointments = "completed_appointments"
	MetricCancelledAppointments = "cancelled_appointments"
	MetricNewClients            = "new_clients"
)

// ======================================================
// USE CASE
// ======================================================

type Dashboard struct {
	repo domain.Repository
	now  func() time.Time
}

func New(repo domain.Repository) *Dashboard {
	return &Dashboard{repo: repo, now: timezone.Now}
}

// Stats computes the headline counters. Weeks start on Monday.
func (d *Dashboard) Stats(ctx context.Context) (*Stats, error) {
	now := d.now()
	weekStart := timezone.WeekStart(now)
	weekEnd := timezone.Date(mustParse(weekStart).AddDate(0, 0, 7))
	monthStart, monthEnd := timezone.MonthRange(now.Year(), now.Month())

	var s Stats
	var err error

	counts := []struct {
		dst *int64
		run func() (int64, error)
	}{
		{&s.TotalClients, func() (int64, error) {
			return d.repo.CountClients(ctx, domain.ClientFilter{})
		}},
		{&s.ActiveClients, func() (int64, error) {
			return d.repo.CountClients(ctx, domain.ClientFilter{Status: models.ClientStatusActive})
		}},
		{&s.NewClientsWeek, func() (int64, error) {
			return d.repo.CountClients(ctx, domain.ClientFilter{RegisteredFrom: weekStart, RegisteredTo: weekEnd})
		}},
		{&s.TotalAppointments, func() (int64, error) {
			return d.repo.CountAppointments(ctx, domain.AppointmentFilter{})
		}},
		{&s.AppointmentsThisWeek, func() (int64, error) {
			return d.repo.CountAppointments(ctx, domain.AppointmentFilter{DateFrom: weekStart, DateTo: weekEnd})
		}},
		{&s.CompletedAppointments, func() (int64, error) {
			return d.repo.CountAppointments(ctx, domain.AppointmentFilter{Status: models.AppointmentCompleted})
		}},
		{&s.CompletedThisMonth, func() (int64, error) {
			return d.repo.CountAppointments(ctx, domain.AppointmentFilter{
				Status: models.AppointmentCompleted, DateFrom: monthStart, DateTo: monthEnd,
			})
		}},
	}
	for _, c := range counts {
		if *c.dst, err = c.run(); err != nil {
			return nil, err
		}
	}

	sums := []struct {
		dst *decimal.Decimal
		f   domain.PaymentFilter
	}{
		{&s.TotalRevenue, domain.PaymentFilter{Status: models.PaymentPaid}},
		{&s.RevenueThisMonth, domain.PaymentFilter{Status: models.PaymentPaid, PaidFrom: monthStart, PaidTo: monthEnd}},
		{&s.PendingRevenue, domain.PaymentFilter{Status: models.PaymentPending}},
		{&s.OverdueRevenue, domain.PaymentFilter{Status: models.PaymentOverdue}},
	}
	for _, sum := range sums {
		if *sum.dst, err = d.repo.SumPayments(ctx, sum.f); err != nil {
			return nil, err
		}
	}

	return &s, nil
}

func (d *Dashboard) RecentClients(ctx context.Context, limit int) ([]models.Client, error) {
	if limit <= 0 {
		limit = 5
	}
	return d.repo.RecentClients(ctx, limit)
}

// MonthlyRevenue returns the last n months, oldest first, labelled Mon/YYYY.
func (d *Dashboard) MonthlyRevenue(ctx context.Context, months int) ([]MonthlyRevenue, error) {
	if months <= 0 {
		months = 12
	}

	now := d.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	out := make([]MonthlyRevenue, 0, months)
	for i := 0; i < months; i++ {
		m := first.AddDate(0, i, 0)
		from, to := timezone.MonthRange(m.Year(), m.Month())

		revenue, err := d.repo.SumPayments(ctx, domain.PaymentFilter{
			Status: models.PaymentPaid, PaidFrom: from, PaidTo: to,
		})
		if err != nil {
			return nil, err
		}
		apps, err := d.repo.CountAppointments(ctx, domain.AppointmentFilter{DateFrom: from, DateTo: to})
		if err != nil {
			return nil, err
		}
		clients, err := d.repo.CountAppointmentClients(ctx, domain.AppointmentFilter{DateFrom: from, DateTo: to})
		if err != nil {
			return nil, err
		}

		out = append(out, MonthlyRevenue{
			Month:        fmt.Sprintf("%s/%d", m.Format("Jan"), m.Year()),
			Revenue:      revenue,
			Appointments: apps,
			Clients:      clients,
		})
	}
	return out, nil
}

// MonthlyPerformance reports a month's billing and appointment mix. Zero
// year or month mean the current one.
func (d *Dashboard) MonthlyPerformance(ctx context.Context, year int, month time.Month) ([]Metric, error) {
	now := d.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	from, to := timezone.MonthRange(year, month)

	// --------------------------------------------------
	// Billing
	// --------------------------------------------------
	revenue, err := d.repo.SumPayments(ctx, domain.PaymentFilter{Status: models.PaymentPaid, PaidFrom: from, PaidTo: to})
	if err != nil {
		return nil, err
	}
	pending, err := d.repo.SumPayments(ctx, domain.PaymentFilter{Status: models.PaymentPending, DueFrom: from, DueTo: to})
	if err != nil {
		return nil, err
	}
	overdue, err := d.repo.SumPayments(ctx, domain.PaymentFilter{Status: models.PaymentOverdue, DueFrom: from, DueTo: to})
	if err != nil {
		return nil, err
	}
	billed := revenue.Add(pending).Add(overdue)

	// --------------------------------------------------
	// Appointments
	// --------------------------------------------------
	monthApps, err := d.repo.CountAppointments(ctx, domain.AppointmentFilter{DateFrom: from, DateTo: to})
	if err != nil {
		return nil, err
	}
	completed, err := d.repo.CountAppointments(ctx, domain.AppointmentFilter{Status: models.AppointmentCompleted, DateFrom: from, DateTo: to})
	if err != nil {
		return nil, err
	}
	cancelled, err := d.repo.CountAppointments(ctx, domain.AppointmentFilter{Status: models.AppointmentCancelled, DateFrom: from, DateTo: to})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Clients
	// --------------------------------------------------
	totalClients, err := d.repo.CountClients(ctx, domain.ClientFilter{})
	if err != nil {
		return nil, err
	}
	newClients, err := d.repo.CountClients(ctx, domain.ClientFilter{RegisteredFrom: from, RegisteredTo: to})
	if err != nil {
		return nil, err
	}

	return []Metric{
		{Metric: MetricRevenue, Value: revenue, Percentage: percentDec(revenue, billed)},
		{Metric: MetricPendingRevenue, Value: pending, Percentage: percentDec(pending, billed)},
		{Metric: MetricOverdueRevenue, Value: overdue, Percentage: percentDec(overdue, billed)},
		countMetric(MetricCompletedAppointments, completed, monthApps),
		countMetric(MetricCancelledAppointments, cancelled, monthApps),
		countMetric(MetricNewClients, newClients, totalClients),
	}, nil
}

// ======================================================
// HELPERS
// ======================================================

func countMetric(name string, n, total int64) Metric {
	return Metric{
		Metric:     name,
		Value:      decimal.NewFromInt(n),
		Count:      n,
		Percentage: percentDec(decimal.NewFromInt(n), decimal.NewFromInt(total)),
	}
}

func percentDec(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Mul(decimal.NewFromInt(100)).Div(total).Round(2).InexactFloat64()
}

func mustParse(date string) time.Time {
	t, _ := time.Parse(timezone.DateLayout, date)
	return t
}
