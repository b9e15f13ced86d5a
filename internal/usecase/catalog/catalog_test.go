package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/crm-manager/internal/db/dbtest"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/infra/repository"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

func TestServicesLifecycle(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	feed := realtime.NewMemoryBroker()
	events, err := feed.Subscribe(ctx, realtime.TableServices)
	require.NoError(t, err)

	uc := NewServices(repository.NewServiceGormRepository(db), nil, feed)

	_, err = uc.Create(ctx, uuid.Nil, CreateServiceInput{Name: "  "})
	require.True(t, httperr.IsBusiness(err, "missing_name"))

	svc, err := uc.Create(ctx, uuid.Nil, CreateServiceInput{
		Name:         " Consultoria ",
		DefaultPrice: decimal.RequireFromString("150.00"),
	})
	require.NoError(t, err)
	require.Equal(t, "Consultoria", svc.Name)
	require.Equal(t, 60, svc.DurationMinutes)
	require.Equal(t, realtime.Insert, (<-events).Type)

	off := false
	_, err = uc.Update(ctx, uuid.Nil, svc.ID, UpdateServiceInput{Active: &off})
	require.NoError(t, err)
	require.Equal(t, realtime.Update, (<-events).Type)

	active, err := uc.List(ctx, true)
	require.NoError(t, err)
	require.Empty(t, active)

	all, err := uc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 1)

	negative := decimal.NewFromInt(-1)
	_, err = uc.Update(ctx, uuid.Nil, svc.ID, UpdateServiceInput{DefaultPrice: &negative})
	require.True(t, httperr.IsBusiness(err, "invalid_price"))

	_, err = uc.Update(ctx, uuid.Nil, uuid.New(), UpdateServiceInput{})
	require.True(t, httperr.IsBusiness(err, "service_not_found"))
}
