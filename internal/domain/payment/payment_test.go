package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
)

func TestIsOverdue(t *testing.T) {
	today := "2025-06-10"

	require.True(t, IsOverdue(models.Payment{Status: models.PaymentPending, DueDate: "2025-06-09"}, today))
	require.False(t, IsOverdue(models.Payment{Status: models.PaymentPending, DueDate: "2025-06-10"}, today))
	require.True(t, IsOverdue(models.Payment{Status: models.PaymentOverdue, DueDate: "2025-07-01"}, today))
	require.False(t, IsOverdue(models.Payment{Status: models.PaymentPaid, DueDate: "2025-01-01"}, today))
}

func TestMarkPaid(t *testing.T) {
	p := &models.Payment{Status: models.PaymentOverdue}

	require.True(t, httperr.IsBusiness(MarkPaid(p, "Cheque", "", "2025-06-10"), "invalid_payment_method"))

	require.NoError(t, MarkPaid(p, models.MethodPIX, "", "2025-06-10"))
	require.Equal(t, models.PaymentPaid, p.Status)
	require.Equal(t, "2025-06-10", *p.PaymentDate)
	require.Equal(t, models.MethodPIX, *p.PaymentMethod)

	require.True(t, httperr.IsBusiness(MarkPaid(p, models.MethodCash, "", "2025-06-10"), "already_paid"))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]models.Payment{
		{Status: models.PaymentPaid, Value: decimal.RequireFromString("100.50")},
		{Status: models.PaymentPaid, Value: decimal.RequireFromString("49.50")},
		{Status: models.PaymentPending, Value: decimal.NewFromInt(80)},
		{Status: models.PaymentOverdue, Value: decimal.NewFromInt(20)},
	})

	require.Equal(t, "150", s.TotalPaid.String())
	require.Equal(t, 2, s.CountPaid)
	require.Equal(t, "80", s.TotalPending.String())
	require.Equal(t, 1, s.CountOverdue)
}
