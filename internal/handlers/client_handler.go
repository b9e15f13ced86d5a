package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/crm-manager/internal/domain/client"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/httpresp"
	"github.com/BruksfildServices01/crm-manager/internal/middleware"
	ucClient "github.com/BruksfildServices01/crm-manager/internal/usecase/client"
)

// ======================================================
// HANDLER
// ======================================================

type ClientHandler struct {
	queries        *ucClient.Queries
	createUC       *ucClient.CreateClient
	updateUC       *ucClient.UpdateClient
	deleteUC       *ucClient.DeleteClient
	interactionUC  *ucClient.AddInteraction
	uploadAvatarUC *ucClient.UploadAvatar
}

func NewClientHandler(
	queries *ucClient.Queries,
	createUC *ucClient.CreateClient,
	updateUC *ucClient.UpdateClient,
	deleteUC *ucClient.DeleteClient,
	interactionUC *ucClient.AddInteraction,
	uploadAvatarUC *ucClient.UploadAvatar,
) *ClientHandler {
	return &ClientHandler{
		queries:        queries,
		createUC:       createUC,
		updateUC:       updateUC,
		deleteUC:       deleteUC,
		interactionUC:  interactionUC,
		uploadAvatarUC: uploadAvatarUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateClientRequest struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	Email  string `json:"email"`
	Status string `json:"status"`
	Origin string `json:"origin"`
	Notes  string `json:"notes"`
}

type UpdateClientRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Email  *string `json:"email"`
	Status *string `json:"status"`
	Origin *string `json:"origin"`
	Notes  *string `json:"notes"`
}

type AddInteractionRequest struct {
	Type        string `json:"interaction_type"`
	Description string `json:"description" binding:"required"`
	CreatedBy   string `json:"created_by"`
}

// ======================================================
// READS
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.queries.List(c.Request.Context(), c.Query("query"))
	if err != nil {
		respondError(c, err, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}
	httpresp.List(c, clients)
}

func (h *ClientHandler) Search(c *gin.Context) {
	f := domain.SearchFilters{
		Term:     c.Query("term"),
		Status:   c.Query("status"),
		Origin:   c.Query("origin"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Limit:    queryInt(c, "limit", domain.DefaultLimit),
		Offset:   queryInt(c, "offset", 0),
	}

	clients, err := h.queries.Search(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "failed_to_search_clients", "Erro ao buscar clientes.")
		return
	}
	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	client, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed_to_get_client", "Erro ao carregar cliente.")
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) History(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	history, err := h.queries.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed_to_list_history", "Erro ao carregar histórico.")
		return
	}
	httpresp.List(c, history)
}

// ======================================================
// WRITES
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	client, err := h.createUC.Execute(c.Request.Context(), middleware.UserID(c), ucClient.CreateClientInput{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Status: req.Status,
		Origin: req.Origin,
		Notes:  req.Notes,
	})
	if err != nil {
		respondError(c, err, "failed_to_create_client", "Erro ao criar cliente.")
		return
	}
	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	client, err := h.updateUC.Execute(c.Request.Context(), middleware.UserID(c), id, ucClient.UpdateClientInput{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Status: req.Status,
		Origin: req.Origin,
		Notes:  req.Notes,
	})
	if err != nil {
		respondError(c, err, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, "failed_to_delete_client", "Erro ao excluir cliente.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClientHandler) AddInteraction(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req AddInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	entry, err := h.interactionUC.Execute(c.Request.Context(), middleware.UserID(c), id, ucClient.AddInteractionInput{
		Type:        req.Type,
		Description: req.Description,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		respondError(c, err, "failed_to_add_interaction", "Erro ao registrar interação.")
		return
	}
	httpresp.Created(c, entry)
}

func (h *ClientHandler) UploadAvatar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo obrigatório.")
		return
	}

	file, err := header.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
		return
	}
	defer file.Close()

	url, err := h.uploadAvatarUC.Execute(c.Request.Context(), middleware.UserID(c), id, file)
	if err != nil {
		respondError(c, err, "failed_to_upload_avatar", "Erro ao enviar imagem.")
		return
	}
	httpresp.OK(c, gin.H{"avatar_url": url})
}
