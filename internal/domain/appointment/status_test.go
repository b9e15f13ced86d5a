package appointment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
)

func TestTransitions(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	ap := &models.Appointment{Status: models.AppointmentScheduled}
	require.NoError(t, Confirm(ap))
	require.Equal(t, models.AppointmentConfirmed, ap.Status)
	require.True(t, httperr.IsBusiness(Confirm(ap), "invalid_state"))

	require.NoError(t, Complete(ap, now))
	require.Equal(t, now, *ap.CompletedAt)
	require.True(t, httperr.IsBusiness(Cancel(ap, "late", now), "invalid_state"))

	open := &models.Appointment{Status: models.AppointmentConfirmed}
	require.NoError(t, Cancel(open, "  client asked  ", now))
	require.Equal(t, "client asked", open.CancelReason)
	require.Equal(t, models.AppointmentCancelled, open.Status)
	require.True(t, httperr.IsBusiness(Complete(open, now), "invalid_state"))
}

func TestValidate(t *testing.T) {
	ap := models.Appointment{
		ServiceName:     "Consulta inicial",
		AppointmentDate: "2025-06-10",
		AppointmentTime: "10:00",
		Status:          models.AppointmentScheduled,
		Value:           decimal.NewFromInt(150),
	}
	require.NoError(t, Validate(&ap))

	bad := ap
	bad.AppointmentTime = "25:00"
	require.True(t, httperr.IsBusiness(Validate(&bad), "invalid_time"))

	bad = ap
	bad.Value = decimal.NewFromInt(-1)
	require.True(t, httperr.IsBusiness(Validate(&bad), "invalid_value"))

	bad = ap
	bad.Status = "Agendado"
	require.True(t, httperr.IsBusiness(Validate(&bad), "invalid_status"))
}
