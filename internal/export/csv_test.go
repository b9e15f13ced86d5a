package export

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/storage"
)

func TestCSVQuotesEveryField(t *testing.T) {
	got := CSV([]string{"name", "notes"}, [][]string{
		{"Ana", `said "hi", left`},
		{"", "plain"},
	})

	want := "name,notes\n" +
		`"Ana","said ""hi"", left"` + "\n" +
		`"","plain"`
	require.Equal(t, want, got)
}

func TestCSVHeaderOnly(t *testing.T) {
	require.Equal(t, "a,b", CSV([]string{"a", "b"}, nil))
}

func TestFilename(t *testing.T) {
	require.Equal(t, "clients_2025-06-10.csv", Filename(EntityClients, time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)))
}

func TestPaymentRowsHandleMissingFields(t *testing.T) {
	rows := PaymentRows([]models.Payment{{
		ServiceName: "Sessão",
		Value:       decimal.RequireFromString("99.9"),
		DueDate:     "2025-06-01",
		Status:      models.PaymentPending,
	}})
	require.Equal(t, [][]string{{"", "Sessão", "99.90", "2025-06-01", "", models.PaymentPending, ""}}, rows)
}

type fakeSource struct {
	clients []models.Client
	err     error
}

func (f fakeSource) Clients(context.Context) ([]models.Client, error) { return f.clients, f.err }
func (f fakeSource) Appointments(context.Context) ([]models.Appointment, error) {
	return nil, f.err
}
func (f fakeSource) Payments(context.Context) ([]models.Payment, error) { return nil, f.err }

func TestExporterArchives(t *testing.T) {
	store := storage.NewMemoryStore("https://files.example")
	e := NewExporter(fakeSource{clients: []models.Client{{
		Name: "Ana", Phone: "119", Status: models.ClientStatusActive, TotalAppointments: 2,
		TotalSpent: decimal.NewFromInt(150),
	}}}, store)
	e.now = func() time.Time { return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) }

	f, err := e.Export(context.Background(), EntityClients, true)
	require.NoError(t, err)
	require.Equal(t, "clients_2025-06-10.csv", f.Name)
	require.True(t, strings.HasSuffix(f.Content, `"Ana","119","","Active","","","2","150.00"`))

	data, ok := store.Get(strings.TrimPrefix(f.ArchiveURL, "https://files.example/"))
	require.True(t, ok)
	require.Equal(t, f.Content, string(data))

	_, err = e.Export(context.Background(), "invoices", false)
	require.True(t, httperr.IsBusiness(err, "invalid_export_entity"))

	_, err = NewExporter(fakeSource{err: errors.New("down")}, nil).Export(context.Background(), EntityPayments, false)
	require.EqualError(t, err, "down")
}
