package payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-manager/internal/checkout"
	"github.com/BruksfildServices01/crm-manager/internal/db/dbtest"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/payment"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/infra/repository"
	"github.com/BruksfildServices01/crm-manager/internal/models"
)

func fixed() time.Time { return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) }

type fixture struct {
	db     *gorm.DB
	repo   *repository.PaymentGormRepository
	client models.Client
}

func setup(t *testing.T) fixture {
	t.Helper()

	db := dbtest.Open(t)
	client := models.Client{
		Name:             "Bruno Lima",
		Phone:            "21977776666",
		Status:           models.ClientStatusActive,
		Origin:           models.OriginWhatsApp,
		RegistrationDate: "2025-02-01",
	}
	require.NoError(t, db.Create(&client).Error)

	return fixture{db: db, repo: repository.NewPaymentGormRepository(db), client: client}
}

func (f fixture) create(t *testing.T, value int64, due, status string) *models.Payment {
	t.Helper()
	uc := NewCreatePayment(f.repo, nil, nil)
	uc.now = fixed

	p, err := uc.Execute(context.Background(), uuid.Nil, CreatePaymentInput{
		ClientID:    f.client.ID,
		ServiceName: "Sessão",
		Value:       decimal.NewFromInt(value),
		DueDate:     due,
		Status:      status,
	})
	require.NoError(t, err)
	return p
}

func (f fixture) spent(t *testing.T) string {
	t.Helper()
	var c models.Client
	require.NoError(t, f.db.First(&c, "id = ?", f.client.ID).Error)
	return c.TotalSpent.StringFixed(2)
}

func TestCreatePaymentValidation(t *testing.T) {
	f := setup(t)
	uc := NewCreatePayment(f.repo, nil, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, uuid.Nil, CreatePaymentInput{
		ClientID: uuid.New(), ServiceName: "x", Value: decimal.NewFromInt(10), DueDate: "2025-06-01",
	})
	require.True(t, httperr.IsBusiness(err, "client_not_found"))

	_, err = uc.Execute(ctx, uuid.Nil, CreatePaymentInput{
		ClientID: f.client.ID, ServiceName: "x", Value: decimal.Zero, DueDate: "2025-06-01",
	})
	require.True(t, httperr.IsBusiness(err, "invalid_value"))

	missing := uuid.New()
	_, err = uc.Execute(ctx, uuid.Nil, CreatePaymentInput{
		ClientID: f.client.ID, AppointmentID: &missing, ServiceName: "x", Value: decimal.NewFromInt(1), DueDate: "2025-06-01",
	})
	require.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestPaidPaymentsDriveTotalSpent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	paid := f.create(t, 100, "2025-06-01", models.PaymentPaid)
	require.Equal(t, "2025-06-10", *paid.PaymentDate)
	pending := f.create(t, 40, "2025-06-20", "")
	require.Equal(t, "100.00", f.spent(t))

	mark := NewMarkAsPaid(f.repo, nil, nil)
	mark.now = fixed
	p, err := mark.Execute(ctx, uuid.Nil, pending.ID, models.MethodPIX, "")
	require.NoError(t, err)
	require.Equal(t, "2025-06-10", *p.PaymentDate)
	require.Equal(t, "140.00", f.spent(t))

	_, err = mark.Execute(ctx, uuid.Nil, pending.ID, models.MethodPIX, "")
	require.True(t, httperr.IsBusiness(err, "already_paid"))

	require.NoError(t, NewDeletePayment(f.repo, nil, nil).Execute(ctx, uuid.Nil, paid.ID))
	require.Equal(t, "40.00", f.spent(t))

	var history int64
	require.NoError(t, f.db.Model(&models.ClientHistory{}).
		Where("client_id = ? AND interaction_type = ?", f.client.ID, models.InteractionPayment).
		Count(&history).Error)
	require.EqualValues(t, 1, history)
}

func TestRecomputeOverdue(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	late := f.create(t, 30, "2025-06-01", "")
	f.create(t, 30, "2025-06-10", "")
	f.create(t, 30, "2025-05-01", models.PaymentPaid)

	uc := NewRecomputeOverdue(f.repo, nil, nil)
	uc.now = fixed
	n, err := uc.Execute(ctx, uuid.Nil)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	var p models.Payment
	require.NoError(t, f.db.First(&p, "id = ?", late.ID).Error)
	require.Equal(t, models.PaymentOverdue, p.Status)

	n, err = uc.Execute(ctx, uuid.Nil)
	require.NoError(t, err)
	require.Zero(t, n)

	update := NewUpdatePayment(f.repo, nil, nil)
	update.now = fixed
	due := "2025-07-01"
	moved, err := update.Execute(ctx, uuid.Nil, late.ID, UpdatePaymentInput{DueDate: &due})
	require.NoError(t, err)
	require.Equal(t, models.PaymentPending, moved.Status)
}

func TestSearchOverdueOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.create(t, 10, "2025-06-05", "")
	f.create(t, 20, "2025-06-15", "")
	f.create(t, 30, "2025-06-01", models.PaymentPaid)

	q := NewQueries(f.repo)
	q.now = fixed

	rows, err := q.Search(ctx, domain.SearchFilters{OverdueOnly: true})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Bruno Lima", rows[0].ClientName)
	require.Equal(t, 5, rows[0].DaysOverdue)

	rows, err = q.Search(ctx, domain.SearchFilters{Status: models.PaymentPending, DateFrom: "2025-06-10"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = q.Search(ctx, domain.SearchFilters{Status: "Pago"})
	require.True(t, httperr.IsBusiness(err, "invalid_status"))
}

type fakeGateway struct {
	url  string
	err  error
	seen checkout.Item
}

func (g *fakeGateway) CreateLink(_ context.Context, item checkout.Item) (string, error) {
	g.seen = item
	return g.url, g.err
}

var _ checkout.Gateway = (*fakeGateway)(nil)

func TestCreateCheckoutLink(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p := f.create(t, 75, "2025-06-20", "")

	gw := &fakeGateway{url: "https://pay.example/abc"}
	out, err := NewCreateCheckoutLink(f.repo, gw, nil, nil).Execute(ctx, uuid.Nil, p.ID)
	require.NoError(t, err)
	require.Equal(t, "https://pay.example/abc", out.CheckoutURL)
	require.Equal(t, "Bruno Lima", gw.seen.Description)
	require.Equal(t, "75", gw.seen.Amount.String())

	_, err = NewCreateCheckoutLink(f.repo, checkout.Disabled{}, nil, nil).Execute(ctx, uuid.Nil, p.ID)
	require.True(t, httperr.IsBusiness(err, "checkout_unavailable"))
}
