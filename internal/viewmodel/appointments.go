package viewmodel

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/apiclient"
	"github.com/BruksfildServices01/crm-manager/internal/dto"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

type AppointmentsAPI interface {
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, in apiclient.AppointmentInput) (*models.Appointment, error)
	CreateAppointmentWithPayment(ctx context.Context, in apiclient.AppointmentWithPaymentInput) (uuid.UUID, uuid.UUID, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, patch apiclient.AppointmentPatch) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
	CancelAppointment(ctx context.Context, id uuid.UUID, reason string) error
	ConfirmAppointment(ctx context.Context, id uuid.UUID) error
	CompleteAppointment(ctx context.Context, id uuid.UUID) error
	SearchAppointments(ctx context.Context, f apiclient.AppointmentSearch) ([]dto.AppointmentListDTO, error)
	DailySchedule(ctx context.Context, date string) ([]dto.AppointmentListDTO, error)
}

type Appointments struct {
	*Collection[models.Appointment]
	api AppointmentsAPI
}

func NewAppointments(api AppointmentsAPI) *Appointments {
	return &Appointments{
		Collection: newCollection(
			realtime.TableAppointments,
			api.ListAppointments,
			func(a models.Appointment) uuid.UUID { return a.ID },
			func(a models.Appointment) []string {
				return []string{a.ServiceName, a.Status, a.Notes, clientName(a.Client)}
			},
		),
		api: api,
	}
}

func (v *Appointments) ByClient(clientID uuid.UUID) []models.Appointment {
	return v.Where(func(a models.Appointment) bool { return a.ClientID == clientID })
}

func (v *Appointments) ByDate(date string) []models.Appointment {
	return v.Where(func(a models.Appointment) bool { return a.AppointmentDate == date })
}

func (v *Appointments) Create(ctx context.Context, in apiclient.AppointmentInput) bool {
	return v.Mutate(ctx, func(ctx context.Context) error {
		_, err := v.api.CreateAppointment(ctx, in)
		return err
	})
}

// CreateWithPayment books and bills in one call and returns both ids.
func (v *Appointments) CreateWithPayment(ctx context.Context, in apiclient.AppointmentWithPaymentInput) (uuid.UUID, uuid.UUID, bool) {
	var appointmentID, paymentID uuid.UUID
	ok := v.Mutate(ctx, func(ctx context.Context) error {
		var err error
		appointmentID, paymentID, err = v.api.CreateAppointmentWithPayment(ctx, in)
		return err
	})
	return appointmentID, paymentID, ok
}

func (v *Appointments) Update(ctx context.Context, id uuid.UUID, patch apiclient.AppointmentPatch) bool {
	return v.Mutate(ctx, func(ctx context.Context) error {
		_, err := v.api.UpdateAppointment(ctx, id, patch)
		return err
	})
}

func (v *Appointments) Delete(ctx context.Context, id uuid.UUID) bool {
	return v.Mutate(ctx, func(ctx context.Context) error {
		return v.api.DeleteAppointment(ctx, id)
	})
}

func (v *Appointments) Cancel(ctx context.Context, id uuid.UUID, reason string) bool {
	return v.Mutate(ctx, func(ctx context.Context) error {
		return v.api.CancelAppointment(ctx, id, reason)
	})
}

func (v *Appointments) Confirm(ctx context.Context, id uuid.UUID) bool {
	return v.Mutate(ctx, func(ctx context.Context) error {
		return v.api.ConfirmAppointment(ctx, id)
	})
}

func (v *Appointments) Complete(ctx context.Context, id uuid.UUID) bool {
	return v.Mutate(ctx, func(ctx context.Context) error {
		return v.api.CompleteAppointment(ctx, id)
	})
}

func (v *Appointments) Search(ctx context.Context, f apiclient.AppointmentSearch) ([]dto.AppointmentListDTO, bool) {
	return call(v.Collection, ctx, func(ctx context.Context) ([]dto.AppointmentListDTO, error) {
		return v.api.SearchAppointments(ctx, f)
	})
}

func (v *Appointments) DailySchedule(ctx context.Context, date string) ([]dto.AppointmentListDTO, bool) {
	return call(v.Collection, ctx, func(ctx context.Context) ([]dto.AppointmentListDTO, error) {
		return v.api.DailySchedule(ctx, date)
	})
}

func clientName(c *models.Client) string {
	if c == nil {
		return ""
	}
	return c.Name
}
