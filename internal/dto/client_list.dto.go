package dto

import "github.com/BruksfildServices01/crm-manager/internal/models"

// ClientListDTO is a client row enriched with how recently it was contacted.
type ClientListDTO struct {
	models.Client
	ContactStatus string `json:"contact_status"`
}
