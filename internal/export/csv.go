// Package export renders clients, appointments and payments as CSV.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

// Entities that can be exported.
const (
	EntityClients      = "clients"
	EntityAppointments = "appointments"
	EntityPayments     = "payments"
)

var (
	ClientHeaders      = []string{"name", "phone", "email", "status", "registration_date", "last_contact", "total_appointments", "total_spent"}
	AppointmentHeaders = []string{"client_name", "date", "time", "service", "status", "value", "notes"}
	PaymentHeaders     = []string{"client_name", "service", "value", "due_date", "payment_date", "status", "method"}
)

// CSV writes the header line as is and every row field double-quoted, with
// inner quotes doubled. Lines are joined with "\n" and there is no trailing
// newline.
func CSV(headers []string, rows [][]string) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(headers, ","))

	for _, row := range rows {
		quoted := make([]string, len(row))
		for i, field := range row {
			quoted[i] = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		}
		lines = append(lines, strings.Join(quoted, ","))
	}
	return strings.Join(lines, "\n")
}

// Filename is <entity>_<YYYY-MM-DD>.csv.
func Filename(entity string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", entity, timezone.Date(now))
}

func ClientRows(clients []models.Client) [][]string {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			c.Name,
			c.Phone,
			c.Email,
			c.Status,
			c.RegistrationDate,
			c.LastContact,
			fmt.Sprint(c.TotalAppointments),
			c.TotalSpent.StringFixed(2),
		})
	}
	return rows
}

func AppointmentRows(apps []models.Appointment) [][]string {
	rows := make([][]string, 0, len(apps))
	for _, ap := range apps {
		rows = append(rows, []string{
			clientName(ap.Client),
			ap.AppointmentDate,
			ap.AppointmentTime,
			ap.ServiceName,
			ap.Status,
			ap.Value.StringFixed(2),
			ap.Notes,
		})
	}
	return rows
}

func PaymentRows(payments []models.Payment) [][]string {
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			clientName(p.Client),
			p.ServiceName,
			p.Value.StringFixed(2),
			p.DueDate,
			deref(p.PaymentDate),
			p.Status,
			deref(p.PaymentMethod),
		})
	}
	return rows
}

func clientName(c *models.Client) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
