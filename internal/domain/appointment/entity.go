package appointment

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelReason = strings.TrimSpace(reason)
	ap.CancelledAt = &now
	return nil
}

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Validate checks the fields a caller may write directly.
func Validate(ap *models.Appointment) error {
	switch {
	case strings.TrimSpace(ap.ServiceName) == "":
		return httperr.ErrBusiness("missing_service_name")
	case !timezone.ValidDate(ap.AppointmentDate):
		return httperr.ErrBusiness("invalid_date")
	case !timezone.ValidTime(ap.AppointmentTime):
		return httperr.ErrBusiness("invalid_time")
	case ap.Value.LessThan(decimal.Zero):
		return httperr.ErrBusiness("invalid_value")
	case !IsValid(Status(ap.Status)):
		return httperr.ErrBusiness("invalid_status")
	}
	return nil
}
