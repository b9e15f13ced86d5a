package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/crm-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/httpresp"
	"github.com/BruksfildServices01/crm-manager/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/crm-manager/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	queries         *ucAppointment.Queries
	createUC        *ucAppointment.CreateAppointment
	createWithPayUC *ucAppointment.CreateAppointmentWithPayment
	updateUC        *ucAppointment.UpdateAppointment
	deleteUC        *ucAppointment.DeleteAppointment
	cancelUC        *ucAppointment.CancelAppointment
	confirmUC       *ucAppointment.ConfirmAppointment
	completeUC      *ucAppointment.CompleteAppointment
}

func NewAppointmentHandler(
	queries *ucAppointment.Queries,
	createUC *ucAppointment.CreateAppointment,
	createWithPayUC *ucAppointment.CreateAppointmentWithPayment,
	updateUC *ucAppointment.UpdateAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	completeUC *ucAppointment.CompleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		queries:         queries,
		createUC:        createUC,
		createWithPayUC: createWithPayUC,
		updateUC:        updateUC,
		deleteUC:        deleteUC,
		cancelUC:        cancelUC,
		confirmUC:       confirmUC,
		completeUC:      completeUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID    uuid.UUID        `json:"client_id"`
	ServiceID   *uuid.UUID       `json:"service_id"`
	ServiceName string           `json:"service_name"`
	Date        string           `json:"appointment_date" binding:"required"`
	Time        string           `json:"appointment_time" binding:"required"`
	Value       *decimal.Decimal `json:"value"`
	Status      string           `json:"status"`
	Notes       string           `json:"notes"`
}

func (r CreateAppointmentRequest) input() ucAppointment.CreateAppointmentInput {
	return ucAppointment.CreateAppointmentInput{
		ClientID:    r.ClientID,
		ServiceID:   r.ServiceID,
		ServiceName: r.ServiceName,
		Date:        r.Date,
		Time:        r.Time,
		Value:       r.Value,
		Status:      r.Status,
		Notes:       r.Notes,
	}
}

type CreateWithPaymentRequest struct {
	CreateAppointmentRequest
	DueDate      string `json:"due_date"`
	PaymentNotes string `json:"payment_notes"`
}

type UpdateAppointmentRequest struct {
	ClientID    *uuid.UUID       `json:"client_id"`
	ServiceName *string          `json:"service_name"`
	Date        *string          `json:"appointment_date"`
	Time        *string          `json:"appointment_time"`
	Value       *decimal.Decimal `json:"value"`
	Notes       *string          `json:"notes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// READS
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.queries.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}
	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) Search(c *gin.Context) {
	clientID, ok := queryUUID(c, "client_id")
	if !ok {
		return
	}

	f := domain.SearchFilters{
		DateFrom:    c.Query("date_from"),
		DateTo:      c.Query("date_to"),
		Status:      c.Query("status"),
		ClientID:    clientID,
		ServiceName: strings.TrimSpace(c.Query("service_name")),
		Limit:       queryInt(c, "limit", 50),
		Offset:      queryInt(c, "offset", 0),
	}

	rows, err := h.queries.Search(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "failed_to_search_appointments", "Erro ao buscar agendamentos.")
		return
	}
	httpresp.List(c, rows)
}

func (h *AppointmentHandler) Schedule(c *gin.Context) {
	rows, err := h.queries.DailySchedule(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err, "failed_to_load_schedule", "Erro ao carregar agenda.")
		return
	}
	httpresp.List(c, rows)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed_to_get_appointment", "Erro ao carregar agendamento.")
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// WRITES
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), middleware.UserID(c), req.input())
	if err != nil {
		respondError(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}
	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) CreateWithPayment(c *gin.Context) {
	var req CreateWithPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.createWithPayUC.Execute(c.Request.Context(), middleware.UserID(c), ucAppointment.CreateWithPaymentInput{
		CreateAppointmentInput: req.input(),
		DueDate:                req.DueDate,
		PaymentNotes:           req.PaymentNotes,
	})
	if err != nil {
		respondError(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}
	httpresp.Created(c, out)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), middleware.UserID(c), id, ucAppointment.UpdateAppointmentInput{
		ClientID:    req.ClientID,
		ServiceName: req.ServiceName,
		Date:        req.Date,
		Time:        req.Time,
		Value:       req.Value,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, "failed_to_delete_appointment", "Erro ao excluir agendamento.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	// Body is optional.
	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancelUC.Execute(c.Request.Context(), middleware.UserID(c), id, req.Reason)
	if err != nil {
		respondError(c, err, "failed_to_cancel_appointment", "Erro ao cancelar agendamento.")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err, "failed_to_confirm_appointment", "Erro ao confirmar agendamento.")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err, "failed_to_complete_appointment", "Erro ao concluir agendamento.")
		return
	}
	httpresp.OK(c, ap)
}
