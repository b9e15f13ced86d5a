package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/crm-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/crm-manager/internal/dto"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
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

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uuid.UUID,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *AppointmentGormRepository) List(
	ctx context.Context,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Order("appointment_date DESC").
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) listQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("appointments AS a").
		Select(`a.id, a.client_id, c.name AS client_name, c.phone AS client_phone,
			a.service_name, a.appointment_date, a.appointment_time,
			a.status, a.value, a.notes`).
		Joins("JOIN clients AS c ON c.id = a.client_id")
}

func (r *AppointmentGormRepository) Search(
	ctx context.Context,
	f domain.SearchFilters,
) ([]dto.AppointmentListDTO, error) {

	q := r.listQuery(ctx)

	if f.DateFrom != "" {
		q = q.Where("a.appointment_date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("a.appointment_date <= ?", f.DateTo)
	}
	if f.Status != "" {
		q = q.Where("a.status = ?", f.Status)
	}
	if f.ClientID != nil {
		q = q.Where("a.client_id = ?", *f.ClientID)
	}
	if f.ServiceName != "" {
		q = q.Where("LOWER(a.service_name) LIKE ?", "%"+lower(f.ServiceName)+"%")
	}

	var out []dto.AppointmentListDTO
	if err := page(q, f.Limit, f.Offset).
		Order("a.appointment_date DESC").
		Order("a.appointment_time ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListForDate returns the non-cancelled appointments of one day by time.
func (r *AppointmentGormRepository) ListForDate(
	ctx context.Context,
	date string,
) ([]dto.AppointmentListDTO, error) {

	var out []dto.AppointmentListDTO
	if err := r.listQuery(ctx).
		Where("a.appointment_date = ? AND a.status <> ?", date, models.AppointmentCancelled).
		Order("a.appointment_time ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
	entry *models.ClientHistory,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createAppointment(tx, ap, entry)
	})
}

func createAppointment(tx *gorm.DB, ap *models.Appointment, entry *models.ClientHistory) error {
	if err := tx.Omit("Client").Create(ap).Error; err != nil {
		return err
	}
	if err := touchLastContact(tx, ap.ClientID, contactDate(ap, entry)); err != nil {
		return err
	}
	if err := addHistory(tx, entry); err != nil {
		return err
	}
	return recomputeClientAggregates(tx, ap.ClientID)
}

// contactDate is the appointment date, capped at the day it was booked so
// a future visit does not count as contact yet.
func contactDate(ap *models.Appointment, entry *models.ClientHistory) string {
	date := ap.AppointmentDate
	if entry != nil {
		if booked := timezone.Date(entry.InteractionDate); booked < date {
			date = booked
		}
	}
	return date
}

func (r *AppointmentGormRepository) CreateWithPayment(
	ctx context.Context,
	ap *models.Appointment,
	pay *models.Payment,
	entry *models.ClientHistory,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := createAppointment(tx, ap, entry); err != nil {
			return err
		}

		pay.AppointmentID = &ap.ID
		if err := tx.Omit("Client", "Appointment").Create(pay).Error; err != nil {
			return err
		}
		return recomputeClientAggregates(tx, pay.ClientID)
	})
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
	previousClientID uuid.UUID,
) (int64, error) {
	var moved int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Client").Save(ap).Error; err != nil {
			return err
		}
		if previousClientID != ap.ClientID {
			res := tx.Model(&models.Payment{}).
				Where("appointment_id = ?", ap.ID).
				Update("client_id", ap.ClientID)
			if res.Error != nil {
				return res.Error
			}
			moved = res.RowsAffected
		}
		return recomputeAll(tx, ap.ClientID, previousClientID)
	})
	return moved, err
}

func (r *AppointmentGormRepository) ChangeStatus(
	ctx context.Context,
	ap *models.Appointment,
	entry *models.ClientHistory,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(ap).
			Select("status", "cancel_reason", "cancelled_at", "completed_at", "updated_at").
			Updates(ap).Error; err != nil {
			return err
		}
		if err := addHistory(tx, entry); err != nil {
			return err
		}
		return recomputeClientAggregates(tx, ap.ClientID)
	})
}

// Delete detaches linked payments before removing the appointment.
func (r *AppointmentGormRepository) Delete(
	ctx context.Context,
	ap *models.Appointment,
) (int64, error) {
	var detached int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Payment{}).
			Where("appointment_id = ?", ap.ID).
			Update("appointment_id", nil)
		if res.Error != nil {
			return res.Error
		}
		detached = res.RowsAffected
		if err := tx.Where("id = ?", ap.ID).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		return recomputeClientAggregates(tx, ap.ClientID)
	})
	return detached, err
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForReminder(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where(
			"appointment_date = ? AND status IN ? AND reminded_at IS NULL",
			date,
			[]string{models.AppointmentScheduled, models.AppointmentConfirmed},
		).
		Order("appointment_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) MarkReminded(
	ctx context.Context,
	ap *models.Appointment,
	entry *models.ClientHistory,
) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Update("reminded_at", now).Error; err != nil {
			return err
		}
		ap.RemindedAt = &now
		return addHistory(tx, entry)
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
