package export

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/storage"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

// Source lists the rows of each exportable entity.
type Source interface {
	Clients(ctx context.Context) ([]models.Client, error)
	Appointments(ctx context.Context) ([]models.Appointment, error)
	Payments(ctx context.Context) ([]models.Payment, error)
}

type File struct {
	Name       string
	Content    string
	ArchiveURL string
}

type Exporter struct {
	source Source
	store  storage.Store
	now    func() time.Time
}

// NewExporter builds an exporter; store may be nil when archiving is off.
func NewExporter(source Source, store storage.Store) *Exporter {
	return &Exporter{source: source, store: store, now: timezone.Now}
}

func (e *Exporter) Export(ctx context.Context, entity string, archive bool) (*File, error) {
	var (
		headers []string
		rows    [][]string
	)

	switch entity {
	case EntityClients:
		clients, err := e.source.Clients(ctx)
		if err != nil {
			return nil, err
		}
		headers, rows = ClientHeaders, ClientRows(clients)
	case EntityAppointments:
		apps, err := e.source.Appointments(ctx)
		if err != nil {
			return nil, err
		}
		headers, rows = AppointmentHeaders, AppointmentRows(apps)
	case EntityPayments:
		payments, err := e.source.Payments(ctx)
		if err != nil {
			return nil, err
		}
		headers, rows = PaymentHeaders, PaymentRows(payments)
	default:
		return nil, httperr.ErrBusiness("invalid_export_entity")
	}

	now := e.now()
	f := &File{
		Name:    Filename(entity, now),
		Content: CSV(headers, rows),
	}

	if archive {
		if e.store == nil {
			return nil, httperr.ErrBusiness("archive_unavailable")
		}
		key := fmt.Sprintf("exports/%s/%d_%s", entity, now.Unix(), f.Name)
		url, err := e.store.Put(ctx, key, "text/csv; charset=utf-8", []byte(f.Content))
		if err != nil {
			return nil, err
		}
		f.ArchiveURL = url
	}
	return f, nil
}
