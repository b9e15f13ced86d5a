package viewmodel

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/crm-manager/internal/apiclient"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/usecase/dashboard"
)

// DefaultDashboardInterval is the refresh period used by Run when none is
// given.
const DefaultDashboardInterval = 5 * time.Minute

type DashboardAPI interface {
	Stats(ctx context.Context) (*dashboard.Stats, error)
	RecentClients(ctx context.Context, limit int) ([]models.Client, error)
	MonthlyRevenue(ctx context.Context, months int) ([]dashboard.MonthlyRevenue, error)
	Performance(ctx context.Context, year int, month time.Month) ([]dashboard.Metric, error)
}

// DashboardData is one consistent snapshot of the dashboard.
type DashboardData struct {
	Stats         dashboard.Stats
	RecentClients []models.Client
	Revenue       []dashboard.MonthlyRevenue
	Performance   []dashboard.Metric
	UpdatedAt     time.Time
}

type Dashboard struct {
	api DashboardAPI

	mu      sync.RWMutex
	data    DashboardData
	err     string
	loading int
	started uint64
	applied uint64
}

func NewDashboard(api DashboardAPI) *Dashboard {
	return &Dashboard{api: api}
}

// Refresh loads stats, the 5 newest clients, 12 months of revenue and the
// current month's performance. The snapshot only changes when all succeed.
// A refresh that finishes after a newer one has been applied is dropped.
func (d *Dashboard) Refresh(ctx context.Context) bool {
	d.mu.Lock()
	d.started++
	gen := d.started
	d.loading++
	d.mu.Unlock()

	next, err := d.load(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading--

	if gen < d.applied {
		return err == nil
	}
	d.applied = gen

	if err != nil {
		d.err = message(err)
		return false
	}
	d.data = next
	d.err = ""
	return true
}

func (d *Dashboard) load(ctx context.Context) (DashboardData, error) {
	var (
		out DashboardData
		err error
	)

	stats, err := d.api.Stats(ctx)
	if err != nil {
		return out, err
	}
	out.Stats = *stats

	if out.RecentClients, err = d.api.RecentClients(ctx, 5); err != nil {
		return out, err
	}
	if out.Revenue, err = d.api.MonthlyRevenue(ctx, 12); err != nil {
		return out, err
	}
	if out.Performance, err = d.api.Performance(ctx, 0, 0); err != nil {
		return out, err
	}

	out.UpdatedAt = time.Now()
	return out, nil
}

// Run refreshes now and then every interval until ctx ends.
func (d *Dashboard) Run(ctx context.Context, interval time.Duration, onRefresh func(DashboardData, string)) {
	if interval <= 0 {
		interval = DefaultDashboardInterval
	}

	tick := func() {
		d.Refresh(ctx)
		if onRefresh != nil {
			onRefresh(d.Data(), d.Err())
		}
	}

	tick()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}

// MonthlyPerformance loads another month on demand. Zero year or month
// means the current one.
func (d *Dashboard) MonthlyPerformance(ctx context.Context, year int, month time.Month) ([]dashboard.Metric, bool) {
	metrics, err := d.api.Performance(ctx, year, month)
	if err != nil {
		d.mu.Lock()
		d.err = message(err)
		d.mu.Unlock()
		return nil, false
	}
	return metrics, true
}

func (d *Dashboard) Data() DashboardData {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.data
}

func (d *Dashboard) Err() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.err
}

func (d *Dashboard) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loading > 0
}

var (
	_ ClientsAPI      = (*apiclient.Client)(nil)
	_ AppointmentsAPI = (*apiclient.Client)(nil)
	_ PaymentsAPI     = (*apiclient.Client)(nil)
	_ DashboardAPI    = (*apiclient.Client)(nil)
)
