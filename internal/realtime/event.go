package realtime

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	Insert EventType = "INSERT"
	Update EventType = "UPDATE"
	Delete EventType = "DELETE"
)

// Tables with a change feed.
const (
	TableClients      = "clients"
	TableAppointments = "appointments"
	TablePayments     = "payments"
	TableServices     = "services"
)

var AllTables = []string{TableClients, TableAppointments, TablePayments, TableServices}

// Event only says that a row changed. Subscribers reload, they never patch.
type Event struct {
	ID       uuid.UUID `json:"id"`
	Table    string    `json:"table"`
	Type     EventType `json:"type"`
	RecordID uuid.UUID `json:"record_id"`
	At       time.Time `json:"at"`
}

func NewEvent(table string, typ EventType, recordID uuid.UUID) Event {
	return Event{
		ID:       uuid.New(),
		Table:    table,
		Type:     typ,
		RecordID: recordID,
		At:       time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

type Broker interface {
	Publisher
	// Subscribe delivers events for the given tables (all when empty) until
	// ctx is done, then closes the channel.
	Subscribe(ctx context.Context, tables ...string) (<-chan Event, error)
	Close() error
}

// Emit publishes and only logs failures: a lost notification must never
// fail the write that caused it.
func Emit(ctx context.Context, p Publisher, table string, typ EventType, recordID uuid.UUID) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, NewEvent(table, typ, recordID)); err != nil {
		log.Printf("realtime: publish %s %s %s: %v", table, typ, recordID, err)
	}
}

func tableSet(tables []string) map[string]bool {
	if len(tables) == 0 {
		tables = AllTables
	}
	set := make(map[string]bool, len(tables))
	for _, t := range tables {
		set[t] = true
	}
	return set
}
