// Package notify sends WhatsApp messages to clients.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/BruksfildServices01/crm-manager/internal/config"
	"github.com/BruksfildServices01/crm-manager/internal/validators"
)

var ErrDisabled = errors.New("notify: sender not configured")

type Sender interface {
	// Send returns the provider message id.
	Send(ctx context.Context, phone, body string) (string, error)
}

// ======================================================
// TWILIO
// ======================================================

type Twilio struct {
	client *twilio.RestClient
	from   string
}

func NewTwilio(cfg *config.Config) *Twilio {
	return &Twilio{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		from: validators.WhatsAppAddress(cfg.TwilioWhatsApp),
	}
}

func (t *Twilio) Send(_ context.Context, phone, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(validators.WhatsAppAddress(phone))
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio: %w", err)
	}
	if resp.Sid == nil {
		log.Printf("twilio: message to %s accepted without sid", phone)
		return "", nil
	}
	return *resp.Sid, nil
}

// ======================================================
// DISABLED
// ======================================================

type Disabled struct{}

func (Disabled) Send(context.Context, string, string) (string, error) {
	return "", ErrDisabled
}

var (
	_ Sender = (*Twilio)(nil)
	_ Sender = Disabled{}
)
