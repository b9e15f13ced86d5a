package client

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-manager/internal/db/dbtest"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/client"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/infra/repository"
	"github.com/BruksfildServices01/crm-manager/internal/media"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/storage"
)

func fixed() time.Time { return time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC) }

func setup(t *testing.T) (*gorm.DB, *repository.ClientGormRepository) {
	t.Helper()
	db := dbtest.Open(t)
	return db, repository.NewClientGormRepository(db)
}

func create(t *testing.T, repo domain.Repository, in CreateClientInput) *models.Client {
	t.Helper()
	uc := NewCreateClient(repo, nil, nil)
	uc.now = fixed
	c, err := uc.Execute(context.Background(), uuid.Nil, in)
	require.NoError(t, err)
	return c
}

func TestCreateClientSetsStoreFields(t *testing.T) {
	db, repo := setup(t)

	c := create(t, repo, CreateClientInput{Name: " Carla Dias ", Phone: "(31) 99999-0000"})
	require.Equal(t, "Carla Dias", c.Name)
	require.Equal(t, "31999990000", c.Phone)
	require.Equal(t, "2025-06-10", c.RegistrationDate)
	require.Equal(t, "2025-06-10", c.LastContact)
	require.Equal(t, models.ClientStatusActive, c.Status)

	var history []models.ClientHistory
	require.NoError(t, db.Where("client_id = ?", c.ID).Find(&history).Error)
	require.Len(t, history, 1)

	_, err := NewCreateClient(repo, nil, nil).Execute(context.Background(), uuid.Nil, CreateClientInput{Name: "X", Phone: "12"})
	require.True(t, httperr.IsBusiness(err, "invalid_phone"))
}

func TestUpdateKeepsAggregates(t *testing.T) {
	db, repo := setup(t)
	c := create(t, repo, CreateClientInput{Name: "Davi", Phone: "11911112222"})

	require.NoError(t, db.Model(&models.Client{}).Where("id = ?", c.ID).
		Updates(map[string]any{"total_appointments": 3, "total_spent": decimal.NewFromInt(300)}).Error)

	status := models.ClientStatusInactive
	notes := "moved away"
	_, err := NewUpdateClient(repo, nil, nil).Execute(context.Background(), uuid.Nil, c.ID, UpdateClientInput{
		Status: &status,
		Notes:  &notes,
	})
	require.NoError(t, err)

	var stored models.Client
	require.NoError(t, db.First(&stored, "id = ?", c.ID).Error)
	require.Equal(t, models.ClientStatusInactive, stored.Status)
	require.Equal(t, "moved away", stored.Notes)
	require.Equal(t, 3, stored.TotalAppointments)
	require.Equal(t, "300.00", stored.TotalSpent.StringFixed(2))

	bad := "Lead"
	_, err = NewUpdateClient(repo, nil, nil).Execute(context.Background(), uuid.Nil, c.ID, UpdateClientInput{Status: &bad})
	require.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestDeleteCascades(t *testing.T) {
	db, repo := setup(t)
	c := create(t, repo, CreateClientInput{Name: "Eva", Phone: "11933334444"})

	ap := models.Appointment{ClientID: c.ID, ServiceName: "Consulta", AppointmentDate: "2025-06-11", AppointmentTime: "10:00", Status: models.AppointmentScheduled}
	require.NoError(t, db.Create(&ap).Error)
	pay := models.Payment{ClientID: c.ID, ServiceName: "Consulta", Value: decimal.NewFromInt(10), DueDate: "2025-06-11", Status: models.PaymentPending}
	require.NoError(t, db.Create(&pay).Error)

	del := NewDeleteClient(repo, nil, nil)
	require.NoError(t, del.Execute(context.Background(), uuid.Nil, c.ID))

	var n int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&n).Error)
	require.Zero(t, n)
	require.NoError(t, db.Model(&models.Appointment{}).Count(&n).Error)
	require.Zero(t, n)

	require.True(t, httperr.IsBusiness(del.Execute(context.Background(), uuid.Nil, c.ID), "client_not_found"))
}

func TestSearchAndList(t *testing.T) {
	_, repo := setup(t)
	create(t, repo, CreateClientInput{Name: "Fernanda Alves", Phone: "11900000001", Origin: models.OriginReferral})
	create(t, repo, CreateClientInput{Name: "Gustavo Reis", Phone: "11900000002", Email: "gustavo@alves.com", Origin: models.OriginWhatsApp})
	create(t, repo, CreateClientInput{Name: "Helena Costa", Phone: "11900000003", Status: models.ClientStatusPending})

	q := NewQueries(repo)
	q.now = fixed
	ctx := context.Background()

	all, err := q.List(ctx, "ALVES")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, domain.ContactRecent, all[0].ContactStatus)

	found, err := q.Search(ctx, domain.SearchFilters{Origin: models.OriginWhatsApp})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Gustavo Reis", found[0].Name)

	found, err = q.Search(ctx, domain.SearchFilters{Status: models.ClientStatusPending, Limit: 10})
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = q.Search(ctx, domain.SearchFilters{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, found, 1)

	_, err = q.Search(ctx, domain.SearchFilters{Origin: "Instagram"})
	require.True(t, httperr.IsBusiness(err, "invalid_origin"))
}

func TestAddInteractionTouchesLastContact(t *testing.T) {
	db, repo := setup(t)
	c := create(t, repo, CreateClientInput{Name: "Igor", Phone: "11955556666"})

	uc := NewAddInteraction(repo, nil, nil)
	uc.now = func() time.Time { return time.Date(2025, 6, 20, 14, 0, 0, 0, time.UTC) }

	entry, err := uc.Execute(context.Background(), uuid.Nil, c.ID, AddInteractionInput{
		Type:        models.InteractionCall,
		Description: "Called about the follow-up",
		CreatedBy:   "reception",
	})
	require.NoError(t, err)
	require.Equal(t, "reception", *entry.CreatedBy)

	var stored models.Client
	require.NoError(t, db.First(&stored, "id = ?", c.ID).Error)
	require.Equal(t, "2025-06-20", stored.LastContact)

	_, err = uc.Execute(context.Background(), uuid.Nil, c.ID, AddInteractionInput{Type: "fax", Description: "x"})
	require.True(t, httperr.IsBusiness(err, "invalid_interaction_type"))

	history, err := NewQueries(repo).History(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, models.InteractionCall, history[0].InteractionType)
}

func TestUploadAvatar(t *testing.T) {
	db, repo := setup(t)
	c := create(t, repo, CreateClientInput{Name: "Julia", Phone: "11977778888"})

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 32, 48))))

	store := storage.NewMemoryStore("https://cdn.example")
	uc := NewUploadAvatar(repo, &media.AvatarProcessor{Size: 16, Quality: 60}, store, nil, nil)
	uc.now = fixed

	url, err := uc.Execute(context.Background(), uuid.Nil, c.ID, &img)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://cdn.example/avatars/"+c.ID.String()))

	_, ok := store.Get(strings.TrimPrefix(url, "https://cdn.example/"))
	require.True(t, ok)

	var stored models.Client
	require.NoError(t, db.First(&stored, "id = ?", c.ID).Error)
	require.Equal(t, url, stored.AvatarURL)

	_, err = uc.Execute(context.Background(), uuid.Nil, c.ID, strings.NewReader("nope"))
	require.True(t, httperr.IsBusiness(err, "invalid_image"))
}
