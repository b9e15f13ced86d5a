package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
	return Event{}
}

func TestMemoryBrokerFiltersByTable(t *testing.T) {
	b := NewMemoryBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clients, err := b.Subscribe(ctx, TableClients)
	require.NoError(t, err)
	all, err := b.Subscribe(ctx)
	require.NoError(t, err)

	id := uuid.New()
	Emit(ctx, b, TablePayments, Update, id)
	Emit(ctx, b, TableClients, Insert, id)

	ev := receive(t, clients)
	require.Equal(t, TableClients, ev.Table)
	require.Equal(t, Insert, ev.Type)
	require.Equal(t, id, ev.RecordID)

	require.Equal(t, TablePayments, receive(t, all).Table)
	require.Equal(t, TableClients, receive(t, all).Table)
}

func TestMemoryBrokerClosesOnCancel(t *testing.T) {
	b := NewMemoryBroker()
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := b.Subscribe(ctx, TableAppointments)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed")
	}

	require.NoError(t, b.Publish(context.Background(), NewEvent(TableAppointments, Delete, uuid.New())))
}

func TestEmitIgnoresNilPublisher(t *testing.T) {
	require.NotPanics(t, func() {
		Emit(context.Background(), nil, TableClients, Insert, uuid.New())
	})
}
