package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/crm-manager/internal/domain/payment"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/httpresp"
	"github.com/BruksfildServices01/crm-manager/internal/middleware"
	ucPayment "github.com/BruksfildServices01/crm-manager/internal/usecase/payment"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	queries    *ucPayment.Queries
	createUC   *ucPayment.CreatePayment
	updateUC   *ucPayment.UpdatePayment
	deleteUC   *ucPayment.DeletePayment
	markPaidUC *ucPayment.MarkAsPaid
	overdueUC  *ucPayment.RecomputeOverdue
	checkoutUC *ucPayment.CreateCheckoutLink
}

func NewPaymentHandler(
	queries *ucPayment.Queries,
	createUC *ucPayment.CreatePayment,
	updateUC *ucPayment.UpdatePayment,
	deleteUC *ucPayment.DeletePayment,
	markPaidUC *ucPayment.MarkAsPaid,
	overdueUC *ucPayment.RecomputeOverdue,
	checkoutUC *ucPayment.CreateCheckoutLink,
) *PaymentHandler {
	return &PaymentHandler{
		queries:    queries,
		createUC:   createUC,
		updateUC:   updateUC,
		deleteUC:   deleteUC,
		markPaidUC: markPaidUC,
		overdueUC:  overdueUC,
		checkoutUC: checkoutUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreatePaymentRequest struct {
	ClientID      uuid.UUID       `json:"client_id"`
	AppointmentID *uuid.UUID      `json:"appointment_id"`
	ServiceName   string          `json:"service_name" binding:"required"`
	Value         decimal.Decimal `json:"value"`
	DueDate       string          `json:"due_date" binding:"required"`
	Status        string          `json:"status"`
	PaymentMethod *string         `json:"payment_method"`
	PaymentDate   *string         `json:"payment_date"`
	Notes         string          `json:"notes"`
}

type UpdatePaymentRequest struct {
	ClientID      *uuid.UUID       `json:"client_id"`
	AppointmentID *uuid.UUID       `json:"appointment_id"`
	ServiceName   *string          `json:"service_name"`
	Value         *decimal.Decimal `json:"value"`
	DueDate       *string          `json:"due_date"`
	Notes         *string          `json:"notes"`
}

type MarkPaidRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
	PaymentDate   string `json:"payment_date"`
}

// ======================================================
// READS
// ======================================================

func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.queries.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed_to_list_payments", "Erro ao listar pagamentos.")
		return
	}
	httpresp.List(c, payments)
}

func (h *PaymentHandler) Search(c *gin.Context) {
	clientID, ok := queryUUID(c, "client_id")
	if !ok {
		return
	}

	f := domain.SearchFilters{
		Status:      c.Query("status"),
		ClientID:    clientID,
		DateFrom:    c.Query("date_from"),
		DateTo:      c.Query("date_to"),
		OverdueOnly: c.Query("overdue_only") == "true",
		Limit:       queryInt(c, "limit", 50),
		Offset:      queryInt(c, "offset", 0),
	}

	rows, err := h.queries.Search(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "failed_to_search_payments", "Erro ao buscar pagamentos.")
		return
	}
	httpresp.List(c, rows)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	p, err := h.queries.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed_to_get_payment", "Erro ao carregar pagamento.")
		return
	}
	httpresp.OK(c, p)
}

// ======================================================
// WRITES
// ======================================================

func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p, err := h.createUC.Execute(c.Request.Context(), middleware.UserID(c), ucPayment.CreatePaymentInput{
		ClientID:      req.ClientID,
		AppointmentID: req.AppointmentID,
		ServiceName:   req.ServiceName,
		Value:         req.Value,
		DueDate:       req.DueDate,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   req.PaymentDate,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err, "failed_to_create_payment", "Erro ao criar pagamento.")
		return
	}
	httpresp.Created(c, p)
}

func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p, err := h.updateUC.Execute(c.Request.Context(), middleware.UserID(c), id, ucPayment.UpdatePaymentInput{
		ClientID:      req.ClientID,
		AppointmentID: req.AppointmentID,
		ServiceName:   req.ServiceName,
		Value:         req.Value,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err, "failed_to_update_payment", "Erro ao atualizar pagamento.")
		return
	}
	httpresp.OK(c, p)
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, "failed_to_delete_payment", "Erro ao excluir pagamento.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p, err := h.markPaidUC.Execute(c.Request.Context(), middleware.UserID(c), id, req.PaymentMethod, req.PaymentDate)
	if err != nil {
		respondError(c, err, "failed_to_mark_paid", "Erro ao registrar pagamento.")
		return
	}
	httpresp.OK(c, p)
}

func (h *PaymentHandler) RecomputeOverdue(c *gin.Context) {
	n, err := h.overdueUC.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "failed_to_update_overdue", "Erro ao atualizar vencidos.")
		return
	}
	httpresp.OK(c, gin.H{"updated": n})
}

func (h *PaymentHandler) Checkout(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	p, err := h.checkoutUC.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err, "failed_to_create_checkout", "Erro ao gerar link de pagamento.")
		return
	}
	httpresp.OK(c, gin.H{"payment_id": p.ID, "checkout_url": p.CheckoutURL})
}
