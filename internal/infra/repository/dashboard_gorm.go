package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/crm-manager/internal/domain/dashboard"
	"github.com/BruksfildServices01/crm-manager/internal/models"
)

// DashboardGormRepository answers the read-only aggregate queries of the
// dashboard and reports.
type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

// --------------------------------------------------
// Counters
// --------------------------------------------------

func (r *DashboardGormRepository) CountClients(
	ctx context.Context,
	f domain.ClientFilter,
) (int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Client{})
	q = eq(q, "status", f.Status)
	q = between(q, "registration_date", f.RegisteredFrom, f.RegisteredTo)

	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (r *DashboardGormRepository) appointments(ctx context.Context, f domain.AppointmentFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	q = eq(q, "status", f.Status)
	return between(q, "appointment_date", f.DateFrom, f.DateTo)
}

func (r *DashboardGormRepository) CountAppointments(
	ctx context.Context,
	f domain.AppointmentFilter,
) (int64, error) {

	var n int64
	err := r.appointments(ctx, f).Count(&n).Error
	return n, err
}

func (r *DashboardGormRepository) CountAppointmentClients(
	ctx context.Context,
	f domain.AppointmentFilter,
) (int64, error) {

	var n int64
	err := r.appointments(ctx, f).Distinct("client_id").Count(&n).Error
	return n, err
}

func (r *DashboardGormRepository) SumPayments(
	ctx context.Context,
	f domain.PaymentFilter,
) (decimal.Decimal, error) {

	q := r.db.WithContext(ctx).Model(&models.Payment{})
	q = eq(q, "status", f.Status)
	q = between(q, "due_date", f.DueFrom, f.DueTo)
	q = between(q, "payment_date", f.PaidFrom, f.PaidTo)

	var sum struct {
		Total decimal.Decimal
	}
	if err := q.Select("COALESCE(SUM(value), 0) AS total").Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum.Total, nil
}

func (r *DashboardGormRepository) RecentClients(
	ctx context.Context,
	limit int,
) ([]models.Client, error) {

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Order("registration_date DESC").
		Order("created_at DESC").
		Limit(limit).
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// --------------------------------------------------
// Distributions
// --------------------------------------------------

func (r *DashboardGormRepository) ClientsByOrigin(ctx context.Context) ([]domain.Bucket, error) {
	var out []domain.Bucket
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Select("origin AS bucket_key, COUNT(*) AS bucket_count").
		Group("origin").
		Order("origin").
		Scan(&out).Error
	return out, err
}

func (r *DashboardGormRepository) AppointmentsByStatus(ctx context.Context) ([]domain.Bucket, error) {
	var out []domain.Bucket
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("status AS bucket_key, COUNT(*) AS bucket_count").
		Group("status").
		Order("status").
		Scan(&out).Error
	return out, err
}

func (r *DashboardGormRepository) PaidByMethod(ctx context.Context) ([]domain.Bucket, error) {
	var out []domain.Bucket
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("payment_method AS bucket_key, COUNT(*) AS bucket_count, COALESCE(SUM(value), 0) AS bucket_total").
		Where("status = ? AND payment_method IS NOT NULL AND payment_method <> ''", models.PaymentPaid).
		Group("payment_method").
		Order("payment_method").
		Scan(&out).Error
	return out, err
}

func (r *DashboardGormRepository) ClientSummaries(ctx context.Context) ([]domain.ClientSummary, error) {
	var out []domain.ClientSummary
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Select(`clients.id AS client_id, clients.name, clients.status,
			clients.total_appointments AS appointments,
			clients.total_spent AS paid_total`).
		Order("clients.total_spent DESC").
		Order("clients.name ASC").
		Scan(&out).Error
	return out, err
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func eq(q *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return q
	}
	return q.Where(column+" = ?", value)
}

func between(q *gorm.DB, column, from, to string) *gorm.DB {
	if from != "" {
		q = q.Where(column+" >= ?", from)
	}
	if to != "" {
		q = q.Where(column+" < ?", to)
	}
	return q
}

var _ domain.Repository = (*DashboardGormRepository)(nil)
