package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/crm-manager/internal/domain/payment"
	"github.com/BruksfildServices01/crm-manager/internal/dto"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *PaymentGormRepository) GetClient(
	ctx context.Context,
	id uuid.UUID,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *PaymentGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *PaymentGormRepository) List(
	ctx context.Context,
) ([]models.Payment, error) {

	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Appointment").
		Order("due_date DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentGormRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentGormRepository) Search(
	ctx context.Context,
	f domain.SearchFilters,
	today string,
) ([]dto.PaymentListDTO, error) {

	q := r.db.WithContext(ctx).
		Table("payments AS p").
		Select(`p.id, p.client_id, c.name AS client_name, p.appointment_id,
			p.service_name, p.value, p.due_date, p.payment_date,
			p.payment_method, p.status`).
		Joins("JOIN clients AS c ON c.id = p.client_id")

	if f.Status != "" {
		q = q.Where("p.status = ?", f.Status)
	}
	if f.ClientID != nil {
		q = q.Where("p.client_id = ?", *f.ClientID)
	}
	if f.DateFrom != "" {
		q = q.Where("p.due_date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("p.due_date <= ?", f.DateTo)
	}
	if f.OverdueOnly {
		q = q.Where(
			"(p.status = ? OR (p.status = ? AND p.due_date < ?))",
			models.PaymentOverdue, models.PaymentPending, today,
		)
	}

	var out []dto.PaymentListDTO
	if err := page(q, f.Limit, f.Offset).
		Order("p.due_date DESC").
		Scan(&out).Error; err != nil {
		return nil, err
	}

	day, err := time.Parse(timezone.DateLayout, today)
	if err != nil {
		return out, nil
	}
	for i := range out {
		if out[i].Status == models.PaymentPaid {
			continue
		}
		due, err := time.Parse(timezone.DateLayout, out[i].DueDate)
		if err != nil || !due.Before(day) {
			continue
		}
		out[i].DaysOverdue = int(day.Sub(due).Hours() / 24)
	}
	return out, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *PaymentGormRepository) Create(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Client", "Appointment").Create(p).Error; err != nil {
			return err
		}
		return recomputeClientAggregates(tx, p.ClientID)
	})
}

func (r *PaymentGormRepository) Update(
	ctx context.Context,
	p *models.Payment,
	previousClientID uuid.UUID,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Client", "Appointment").Save(p).Error; err != nil {
			return err
		}
		return recomputeAll(tx, p.ClientID, previousClientID)
	})
}

func (r *PaymentGormRepository) Delete(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", p.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return recomputeClientAggregates(tx, p.ClientID)
	})
}

func (r *PaymentGormRepository) MarkPaid(
	ctx context.Context,
	p *models.Payment,
	entry *models.ClientHistory,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(p).
			Select("status", "payment_date", "payment_method", "updated_at").
			Updates(p).Error; err != nil {
			return err
		}
		if err := addHistory(tx, entry); err != nil {
			return err
		}
		return recomputeClientAggregates(tx, p.ClientID)
	})
}

func (r *PaymentGormRepository) SetCheckoutURL(
	ctx context.Context,
	id uuid.UUID,
	url string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", id).
		Update("checkout_url", url).Error
}

func (r *PaymentGormRepository) MarkOverdue(
	ctx context.Context,
	today string,
) ([]uuid.UUID, error) {

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Payment{}).
			Where("status = ? AND due_date < ?", models.PaymentPending, today).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Model(&models.Payment{}).
			Where("id IN ?", ids).
			Update("status", models.PaymentOverdue).Error
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Compile-time check
var _ domain.Repository = (*PaymentGormRepository)(nil)
