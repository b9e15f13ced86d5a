package catalog

import (
	"strings"

	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
)

func Validate(s *models.Service) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)

	if s.Name == "" {
		return httperr.ErrBusiness("missing_name")
	}
	if s.DefaultPrice.IsNegative() {
		return httperr.ErrBusiness("invalid_price")
	}
	if s.DurationMinutes <= 0 {
		return httperr.ErrBusiness("invalid_duration")
	}
	return nil
}
