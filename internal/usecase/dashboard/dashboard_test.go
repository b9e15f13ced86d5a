package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-manager/internal/db/dbtest"
	"github.com/BruksfildServices01/crm-manager/internal/infra/repository"
	"github.com/BruksfildServices01/crm-manager/internal/models"
)

// Wednesday.
func fixed() time.Time { return time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC) }

func ptr(s string) *string { return &s }

func seed(t *testing.T) *gorm.DB {
	t.Helper()
	db := dbtest.Open(t)

	clients := []models.Client{
		{Name: "Ana", Phone: "11900000001", Status: models.ClientStatusActive, RegistrationDate: "2025-06-09"},
		{Name: "Beto", Phone: "11900000002", Status: models.ClientStatusActive, RegistrationDate: "2025-05-20"},
		{Name: "Caio", Phone: "11900000003", Status: models.ClientStatusInactive, RegistrationDate: "2025-01-15"},
		{Name: "Dora", Phone: "11900000004", Status: models.ClientStatusPending, RegistrationDate: "2025-06-02"},
	}
	require.NoError(t, db.Create(&clients).Error)
	ana, beto := clients[0].ID, clients[1].ID

	apps := []models.Appointment{
		{ClientID: ana, ServiceName: "A", AppointmentDate: "2025-06-10", AppointmentTime: "09:00", Status: models.AppointmentCompleted},
		{ClientID: ana, ServiceName: "A", AppointmentDate: "2025-06-12", AppointmentTime: "09:00", Status: models.AppointmentScheduled},
		{ClientID: beto, ServiceName: "B", AppointmentDate: "2025-06-03", AppointmentTime: "10:00", Status: models.AppointmentCancelled},
		{ClientID: beto, ServiceName: "B", AppointmentDate: "2025-05-28", AppointmentTime: "10:00", Status: models.AppointmentCompleted},
	}
	require.NoError(t, db.Create(&apps).Error)

	pays := []models.Payment{
		{ClientID: ana, ServiceName: "A", Value: decimal.NewFromInt(100), DueDate: "2025-06-10", Status: models.PaymentPaid, PaymentDate: ptr("2025-06-10"), PaymentMethod: ptr(models.MethodPIX)},
		{ClientID: beto, ServiceName: "B", Value: decimal.NewFromInt(80), DueDate: "2025-05-28", Status: models.PaymentPaid, PaymentDate: ptr("2025-05-29"), PaymentMethod: ptr(models.MethodCash)},
		{ClientID: ana, ServiceName: "A", Value: decimal.NewFromInt(60), DueDate: "2025-06-20", Status: models.PaymentPending},
		{ClientID: beto, ServiceName: "B", Value: decimal.NewFromInt(40), DueDate: "2025-06-01", Status: models.PaymentOverdue},
	}
	require.NoError(t, db.Create(&pays).Error)

	return db
}

func TestStats(t *testing.T) {
	d := New(repository.NewDashboardGormRepository(seed(t)))
	d.now = fixed

	s, err := d.Stats(context.Background())
	require.NoError(t, err)

	require.EqualValues(t, 4, s.TotalClients)
	require.EqualValues(t, 2, s.ActiveClients)
	require.EqualValues(t, 1, s.NewClientsWeek)
	require.EqualValues(t, 4, s.TotalAppointments)
	require.EqualValues(t, 2, s.AppointmentsThisWeek)
	require.EqualValues(t, 2, s.CompletedAppointments)
	require.EqualValues(t, 1, s.CompletedThisMonth)
	require.Equal(t, "180.00", s.TotalRevenue.StringFixed(2))
	require.Equal(t, "100.00", s.RevenueThisMonth.StringFixed(2))
	require.Equal(t, "60.00", s.PendingRevenue.StringFixed(2))
	require.Equal(t, "40.00", s.OverdueRevenue.StringFixed(2))
}

func TestMonthlyRevenue(t *testing.T) {
	d := New(repository.NewDashboardGormRepository(seed(t)))
	d.now = fixed

	series, err := d.MonthlyRevenue(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, series, 3)

	require.Equal(t, "Apr/2025", series[0].Month)
	require.True(t, series[0].Revenue.IsZero())

	require.Equal(t, "May/2025", series[1].Month)
	require.Equal(t, "80.00", series[1].Revenue.StringFixed(2))
	require.EqualValues(t, 1, series[1].Appointments)

	require.Equal(t, "Jun/2025", series[2].Month)
	require.EqualValues(t, 3, series[2].Appointments)
	require.EqualValues(t, 2, series[2].Clients)
}

func TestMonthlyPerformance(t *testing.T) {
	d := New(repository.NewDashboardGormRepository(seed(t)))
	d.now = fixed

	metrics, err := d.MonthlyPerformance(context.Background(), 0, 0)
	require.NoError(t, err)

	byName := map[string]Metric{}
	for _, m := range metrics {
		byName[m.Metric] = m
	}

	// June billed: 100 paid + 60 pending + 40 overdue.
	require.Equal(t, 50.0, byName[MetricRevenue].Percentage)
	require.Equal(t, 30.0, byName[MetricPendingRevenue].Percentage)
	require.Equal(t, 20.0, byName[MetricOverdueRevenue].Percentage)

	require.EqualValues(t, 1, byName[MetricCompletedAppointments].Count)
	require.Equal(t, 33.33, byName[MetricCompletedAppointments].Percentage)
	require.Equal(t, 33.33, byName[MetricCancelledAppointments].Percentage)

	require.EqualValues(t, 2, byName[MetricNewClients].Count)
	require.Equal(t, 50.0, byName[MetricNewClients].Percentage)

	empty, err := d.MonthlyPerformance(context.Background(), 2024, time.January)
	require.NoError(t, err)
	for _, m := range empty {
		require.Zero(t, m.Percentage, m.Metric)
	}
}
