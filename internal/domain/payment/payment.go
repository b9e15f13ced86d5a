package payment

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

var Methods = []string{
	models.MethodPIX,
	models.MethodBoleto,
	models.MethodCard,
	models.MethodTransfer,
	models.MethodCash,
}

func IsValidMethod(m string) bool {
	for _, v := range Methods {
		if v == m {
			return true
		}
	}
	return false
}

func IsValidStatus(s string) bool {
	switch s {
	case models.PaymentPaid, models.PaymentPending, models.PaymentOverdue:
		return true
	}
	return false
}

// IsOverdue is true for rows already flagged Overdue and for Pending rows
// whose due date is before today.
func IsOverdue(p models.Payment, today string) bool {
	if p.Status == models.PaymentOverdue {
		return true
	}
	return p.Status == models.PaymentPending && p.DueDate < today
}

// MarkPaid settles a payment. An empty date means today.
func MarkPaid(p *models.Payment, method, date, today string) error {
	if p.Status == models.PaymentPaid {
		return httperr.ErrBusiness("already_paid")
	}
	if !IsValidMethod(method) {
		return httperr.ErrBusiness("invalid_payment_method")
	}
	if date == "" {
		date = today
	}
	if !timezone.ValidDate(date) {
		return httperr.ErrBusiness("invalid_date")
	}

	p.Status = models.PaymentPaid
	p.PaymentDate = &date
	p.PaymentMethod = &method
	return nil
}

func Validate(p *models.Payment) error {
	switch {
	case strings.TrimSpace(p.ServiceName) == "":
		return httperr.ErrBusiness("missing_service_name")
	case !p.Value.GreaterThan(decimal.Zero):
		return httperr.ErrBusiness("invalid_value")
	case !timezone.ValidDate(p.DueDate):
		return httperr.ErrBusiness("invalid_due_date")
	case !IsValidStatus(p.Status):
		return httperr.ErrBusiness("invalid_status")
	case p.PaymentMethod != nil && *p.PaymentMethod != "" && !IsValidMethod(*p.PaymentMethod):
		return httperr.ErrBusiness("invalid_payment_method")
	case p.PaymentDate != nil && *p.PaymentDate != "" && !timezone.ValidDate(*p.PaymentDate):
		return httperr.ErrBusiness("invalid_date")
	}
	return nil
}

// ===============================
// Stats
// ===============================

type Stats struct {
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalPending decimal.Decimal `json:"total_pending"`
	TotalOverdue decimal.Decimal `json:"total_overdue"`
	CountPaid    int             `json:"count_paid"`
	CountPending int             `json:"count_pending"`
	CountOverdue int             `json:"count_overdue"`
}

// Summarize folds payments into per-status sums and counts.
func Summarize(payments []models.Payment) Stats {
	var s Stats
	for _, p := range payments {
		switch p.Status {
		case models.PaymentPaid:
			s.TotalPaid = s.TotalPaid.Add(p.Value)
			s.CountPaid++
		case models.PaymentPending:
			s.TotalPending = s.TotalPending.Add(p.Value)
			s.CountPending++
		case models.PaymentOverdue:
			s.TotalOverdue = s.TotalOverdue.Add(p.Value)
			s.CountOverdue++
		}
	}
	return s
}
