package repository

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-manager/internal/models"
)

// recomputeClientAggregates rebuilds the denormalized totals of a client
// from its appointment and payment rows. Callers run it inside the
// transaction that changed those rows.
func recomputeClientAggregates(tx *gorm.DB, clientID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Appointment{}).
		Where("client_id = ? AND status <> ?", clientID, models.AppointmentCancelled).
		Count(&count).Error; err != nil {
		return err
	}

	var spent struct {
		Total decimal.Decimal
	}
	if err := tx.Model(&models.Payment{}).
		Select("COALESCE(SUM(value), 0) AS total").
		Where("client_id = ? AND status = ?", clientID, models.PaymentPaid).
		Scan(&spent).Error; err != nil {
		return err
	}

	return tx.Model(&models.Client{}).
		Where("id = ?", clientID).
		Updates(map[string]any{
			"total_appointments": count,
			"total_spent":        spent.Total,
		}).Error
}

// touchLastContact moves last_contact forward, never back.
func touchLastContact(tx *gorm.DB, clientID uuid.UUID, date string) error {
	return tx.Model(&models.Client{}).
		Where("id = ? AND (last_contact IS NULL OR last_contact < ?)", clientID, date).
		Update("last_contact", date).Error
}

func recomputeAll(tx *gorm.DB, ids ...uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		if err := recomputeClientAggregates(tx, id); err != nil {
			return err
		}
	}
	return nil
}

func addHistory(tx *gorm.DB, entry *models.ClientHistory) error {
	if entry == nil {
		return nil
	}
	return tx.Create(entry).Error
}

func page(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
