package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/httpresp"
	"github.com/BruksfildServices01/crm-manager/internal/middleware"
	ucCatalog "github.com/BruksfildServices01/crm-manager/internal/usecase/catalog"
)

type ServiceHandler struct {
	services *ucCatalog.Services
}

func NewServiceHandler(services *ucCatalog.Services) *ServiceHandler {
	return &ServiceHandler{services: services}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	DefaultPrice    decimal.Decimal `json:"default_price"`
	DurationMinutes int             `json:"duration_minutes"`
}

type UpdateServiceRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	DefaultPrice    *decimal.Decimal `json:"default_price,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty"`
	Active          *bool            `json:"active,omitempty"`
}

// --------- Handlers ---------

// List returns active services only unless ?all=true.
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.services.List(c.Request.Context(), c.Query("all") != "true")
	if err != nil {
		respondError(c, err, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	svc, err := h.services.Create(c.Request.Context(), middleware.UserID(c), ucCatalog.CreateServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		DefaultPrice:    req.DefaultPrice,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		respondError(c, err, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	svc, err := h.services.Update(c.Request.Context(), middleware.UserID(c), id, ucCatalog.UpdateServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		DefaultPrice:    req.DefaultPrice,
		DurationMinutes: req.DurationMinutes,
		Active:          req.Active,
	})
	if err != nil {
		respondError(c, err, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}
	httpresp.OK(c, svc)
}
