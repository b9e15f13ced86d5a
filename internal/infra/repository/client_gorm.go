package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/crm-manager/internal/domain/client"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *ClientGormRepository) List(
	ctx context.Context,
	query string,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx).Model(&models.Client{})
	if term := strings.ToLower(strings.TrimSpace(query)); term != "" {
		like := "%" + term + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("last_contact DESC").
		Order("name ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientGormRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientGormRepository) Search(
	ctx context.Context,
	f domain.SearchFilters,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx).Model(&models.Client{})

	if term := strings.ToLower(strings.TrimSpace(f.Term)); term != "" {
		like := "%" + term + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(email) LIKE ? OR LOWER(notes) LIKE ?",
			like, like, like, like,
		)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Origin != "" {
		q = q.Where("origin = ?", f.Origin)
	}
	if f.DateFrom != "" {
		q = q.Where("registration_date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("registration_date <= ?", f.DateTo)
	}

	var clients []models.Client
	if err := page(q, f.Limit, f.Offset).
		Order("last_contact DESC").
		Order("name ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *ClientGormRepository) Create(
	ctx context.Context,
	c *models.Client,
	entry *models.ClientHistory,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		if entry != nil {
			entry.ClientID = c.ID
		}
		return addHistory(tx, entry)
	})
}

// Update writes the editable columns only; dates and totals belong to the store.
func (r *ClientGormRepository) Update(
	ctx context.Context,
	c *models.Client,
) error {
	return r.db.WithContext(ctx).
		Model(c).
		Select("name", "phone", "email", "status", "origin", "notes", "updated_at").
		Updates(c).Error
}

// Delete removes the client with its appointments, payments and history.
func (r *ClientGormRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&models.Payment{}, &models.Appointment{}, &models.ClientHistory{}} {
			if err := tx.Where("client_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}

		res := tx.Where("id = ?", id).Delete(&models.Client{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ClientGormRepository) SetAvatar(
	ctx context.Context,
	id uuid.UUID,
	url string,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Update("avatar_url", url).Error
}

// --------------------------------------------------
// History
// --------------------------------------------------

func (r *ClientGormRepository) History(
	ctx context.Context,
	id uuid.UUID,
) ([]models.ClientHistory, error) {

	var entries []models.ClientHistory
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", id).
		Order("interaction_date DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *ClientGormRepository) AddHistory(
	ctx context.Context,
	entry *models.ClientHistory,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := addHistory(tx, entry); err != nil {
			return err
		}
		return touchLastContact(tx, entry.ClientID, timezone.Date(entry.InteractionDate))
	})
}

// Compile-time check
var _ domain.Repository = (*ClientGormRepository)(nil)
