package client

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
	"github.com/BruksfildServices01/crm-manager/internal/validators"
)

// Contact recency buckets.
const (
	ContactRecent   = "Recent"
	ContactFollowUp = "Follow-up"
	ContactStale    = "Stale"
)

func IsValidStatus(s string) bool {
	switch s {
	case models.ClientStatusActive, models.ClientStatusPending, models.ClientStatusInactive:
		return true
	}
	return false
}

func IsValidOrigin(s string) bool {
	switch s {
	case models.OriginReferral, models.OriginSocialMedia, models.OriginWhatsApp, models.OriginOther:
		return true
	}
	return false
}

// Normalize trims input and fills status/origin defaults.
func Normalize(c *models.Client) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = validators.NormalizePhone(c.Phone)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if c.Status == "" {
		c.Status = models.ClientStatusActive
	}
	if c.Origin == "" {
		c.Origin = models.OriginOther
	}
}

func Validate(c *models.Client) error {
	switch {
	case c.Name == "":
		return httperr.ErrBusiness("missing_name")
	case c.Phone == "":
		return httperr.ErrBusiness("missing_phone")
	case !validators.IsPhoneValid(c.Phone):
		return httperr.ErrBusiness("invalid_phone")
	case c.Email != "" && !validators.IsEmailSyntaxValid(c.Email):
		return httperr.ErrBusiness("invalid_email")
	case !IsValidStatus(c.Status):
		return httperr.ErrBusiness("invalid_status")
	case !IsValidOrigin(c.Origin):
		return httperr.ErrBusiness("invalid_origin")
	}
	return nil
}

// ContactStatus buckets the days since lastContact: up to 7 is Recent, up
// to 30 is Follow-up, anything older or unknown is Stale.
func ContactStatus(lastContact string, today time.Time) string {
	last, err := time.Parse(timezone.DateLayout, lastContact)
	if err != nil {
		return ContactStale
	}
	day, _ := time.Parse(timezone.DateLayout, timezone.Date(today))

	days := int(day.Sub(last).Hours() / 24)
	switch {
	case days <= 7:
		return ContactRecent
	case days <= 30:
		return ContactFollowUp
	}
	return ContactStale
}
