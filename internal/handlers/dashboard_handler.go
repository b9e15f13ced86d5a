package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/httpresp"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
	ucDashboard "github.com/BruksfildServices01/crm-manager/internal/usecase/dashboard"
	ucReport "github.com/BruksfildServices01/crm-manager/internal/usecase/report"
)

type DashboardHandler struct {
	dashboard *ucDashboard.Dashboard
	reports   *ucReport.Reports
}

func NewDashboardHandler(dashboard *ucDashboard.Dashboard, reports *ucReport.Reports) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, reports: reports}
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed_to_load_stats", "Erro ao carregar indicadores.")
		return
	}
	httpresp.OK(c, stats)
}

func (h *DashboardHandler) RecentClients(c *gin.Context) {
	clients, err := h.dashboard.RecentClients(c.Request.Context(), queryInt(c, "limit", 5))
	if err != nil {
		respondError(c, err, "failed_to_load_recent_clients", "Erro ao carregar clientes recentes.")
		return
	}
	httpresp.List(c, clients)
}

func (h *DashboardHandler) MonthlyRevenue(c *gin.Context) {
	rows, err := h.dashboard.MonthlyRevenue(c.Request.Context(), queryInt(c, "months", 12))
	if err != nil {
		respondError(c, err, "failed_to_load_revenue", "Erro ao carregar faturamento.")
		return
	}
	httpresp.List(c, rows)
}

// Performance defaults to the current month.
func (h *DashboardHandler) Performance(c *gin.Context) {
	now := timezone.Now()

	year := queryInt(c, "year", now.Year())
	if year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month := queryInt(c, "month", int(now.Month()))
	if month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	metrics, err := h.dashboard.MonthlyPerformance(c.Request.Context(), year, time.Month(month))
	if err != nil {
		respondError(c, err, "failed_to_load_performance", "Erro ao carregar desempenho.")
		return
	}
	httpresp.List(c, metrics)
}

// ======================================================
// REPORTS
// ======================================================

func (h *DashboardHandler) Distributions(c *gin.Context) {
	d, err := h.reports.Distributions(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed_to_load_report", "Erro ao gerar relatório.")
		return
	}
	httpresp.OK(c, d)
}

func (h *DashboardHandler) ClientReport(c *gin.Context) {
	rows, err := h.reports.Clients(c.Request.Context())
	if err != nil {
		respondError(c, err, "failed_to_load_report", "Erro ao gerar relatório.")
		return
	}
	httpresp.List(c, rows)
}
