package appointment

import (
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = models.AppointmentScheduled
	StatusConfirmed Status = models.AppointmentConfirmed
	StatusCompleted Status = models.AppointmentCompleted
	StatusCancelled Status = models.AppointmentCancelled
)

func IsValid(s Status) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsOpen reports whether the appointment can still change state.
func IsOpen(s Status) bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if !IsOpen(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanConfirm(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if !IsOpen(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
