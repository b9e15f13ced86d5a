package reminder

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/notify"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
)

type Result struct {
	Date   string `json:"date"`
	Sent   int    `json:"sent"`
	Failed int    `json:"failed"`
}

// SendReminders messages every client with an open appointment tomorrow.
// Each appointment is reminded at most once.
type SendReminders struct {
	repo   domain.Repository
	sender notify.Sender
	audit  *audit.Dispatcher
	now    func() time.Time
}

func NewSendReminders(
	repo domain.Repository,
	sender notify.Sender,
	audit *audit.Dispatcher,
) *SendReminders {
	return &SendReminders{repo: repo, sender: sender, audit: audit, now: timezone.Now}
}

func (uc *SendReminders) Execute(ctx context.Context) (*Result, error) {
	now := uc.now()
	res := &Result{Date: timezone.Date(now.AddDate(0, 0, 1))}

	apps, err := uc.repo.ListForReminder(ctx, res.Date)
	if err != nil {
		return nil, err
	}

	for i := range apps {
		ap := &apps[i]
		if ap.Client == nil {
			continue
		}

		sid, err := uc.sender.Send(ctx, ap.Client.Phone, Message(ap))
		if errors.Is(err, notify.ErrDisabled) {
			return res, err
		}
		if err != nil {
			log.Printf("reminder: appointment %s: %v", ap.ID, err)
			res.Failed++
			continue
		}

		entry := &models.ClientHistory{
			ClientID:        ap.ClientID,
			InteractionType: models.InteractionWhatsApp,
			Description:     fmt.Sprintf("Reminder sent for %s on %s at %s", ap.ServiceName, ap.AppointmentDate, ap.AppointmentTime),
			InteractionDate: now,
			Metadata:        fmt.Sprintf(`{"sid":%q}`, sid),
		}
		if err := uc.repo.MarkReminded(ctx, ap, entry); err != nil {
			log.Printf("reminder: mark %s: %v", ap.ID, err)
			res.Failed++
			continue
		}
		res.Sent++
	}

	if res.Sent+res.Failed > 0 {
		uc.audit.Dispatch(audit.Event{
			UserID:   audit.Actor(uuid.Nil),
			Action:   "reminders_sent",
			Entity:   "appointment",
			Metadata: res,
		})
	}
	return res, nil
}

func Message(ap *models.Appointment) string {
	name := ""
	if ap.Client != nil {
		name = ap.Client.Name
	}
	date, err := time.Parse(timezone.DateLayout, ap.AppointmentDate)
	day := ap.AppointmentDate
	if err == nil {
		day = date.Format("02/01")
	}
	return fmt.Sprintf(
		"Olá %s! Lembrete: %s amanhã (%s) às %s. Responda para confirmar ou remarcar.",
		name, ap.ServiceName, day, ap.AppointmentTime,
	)
}
