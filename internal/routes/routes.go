package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	"github.com/BruksfildServices01/crm-manager/internal/checkout"
	"github.com/BruksfildServices01/crm-manager/internal/config"
	"github.com/BruksfildServices01/crm-manager/internal/export"
	"github.com/BruksfildServices01/crm-manager/internal/handlers"
	infraRepo "github.com/BruksfildServices01/crm-manager/internal/infra/repository"
	"github.com/BruksfildServices01/crm-manager/internal/media"
	"github.com/BruksfildServices01/crm-manager/internal/middleware"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
	"github.com/BruksfildServices01/crm-manager/internal/storage"
	ucAppointment "github.com/BruksfildServices01/crm-manager/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/crm-manager/internal/usecase/catalog"
	ucClient "github.com/BruksfildServices01/crm-manager/internal/usecase/client"
	ucDashboard "github.com/BruksfildServices01/crm-manager/internal/usecase/dashboard"
	ucPayment "github.com/BruksfildServices01/crm-manager/internal/usecase/payment"
	ucReport "github.com/BruksfildServices01/crm-manager/internal/usecase/report"
)

// Infra holds the process-wide adapters shared by every route.
type Infra struct {
	Audit   *audit.Dispatcher
	Broker  realtime.Broker
	Store   storage.Store
	Gateway checkout.Gateway
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, infra Infra) {

	// ======================================================
	// INFRA
	// ======================================================
	clientRepo := infraRepo.NewClientGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	paymentRepo := infraRepo.NewPaymentGormRepository(db)
	serviceRepo := infraRepo.NewServiceGormRepository(db)
	dashboardRepo := infraRepo.NewDashboardGormRepository(db)

	gateway := infra.Gateway
	if gateway == nil {
		gateway = checkout.Disabled{}
	}

	// ======================================================
	// USE CASES
	// ======================================================
	auditDispatcher, feed := infra.Audit, infra.Broker

	clientHandler := handlers.NewClientHandler(
		ucClient.NewQueries(clientRepo),
		ucClient.NewCreateClient(clientRepo, auditDispatcher, feed),
		ucClient.NewUpdateClient(clientRepo, auditDispatcher, feed),
		ucClient.NewDeleteClient(clientRepo, auditDispatcher, feed),
		ucClient.NewAddInteraction(clientRepo, auditDispatcher, feed),
		ucClient.NewUploadAvatar(clientRepo, media.NewAvatarProcessor(), infra.Store, auditDispatcher, feed),
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewQueries(appointmentRepo),
		ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher, feed),
		ucAppointment.NewCreateAppointmentWithPayment(appointmentRepo, auditDispatcher, feed),
		ucAppointment.NewUpdateAppointment(appointmentRepo, auditDispatcher, feed),
		ucAppointment.NewDeleteAppointment(appointmentRepo, auditDispatcher, feed),
		ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher, feed),
		ucAppointment.NewConfirmAppointment(appointmentRepo, auditDispatcher, feed),
		ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher, feed),
	)

	paymentHandler := handlers.NewPaymentHandler(
		ucPayment.NewQueries(paymentRepo),
		ucPayment.NewCreatePayment(paymentRepo, auditDispatcher, feed),
		ucPayment.NewUpdatePayment(paymentRepo, auditDispatcher, feed),
		ucPayment.NewDeletePayment(paymentRepo, auditDispatcher, feed),
		ucPayment.NewMarkAsPaid(paymentRepo, auditDispatcher, feed),
		ucPayment.NewRecomputeOverdue(paymentRepo, auditDispatcher, feed),
		ucPayment.NewCreateCheckoutLink(paymentRepo, gateway, auditDispatcher, feed),
	)

	serviceHandler := handlers.NewServiceHandler(
		ucCatalog.NewServices(serviceRepo, auditDispatcher, feed),
	)

	dashboardHandler := handlers.NewDashboardHandler(
		ucDashboard.New(dashboardRepo),
		ucReport.New(dashboardRepo),
	)

	exportHandler := handlers.NewExportHandler(
		export.NewExporter(infraRepo.NewExportSource(db), infra.Store),
	)

	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(db))
	realtimeHandler := handlers.NewRealtimeHandler(infra.Broker)

	// ======================================================
	// FILES (memory store only)
	// ======================================================
	if mem, ok := infra.Store.(*storage.MemoryStore); ok {
		r.GET("/files/*key", func(c *gin.Context) {
			data, found := mem.Get(strings.TrimPrefix(c.Param("key"), "/"))
			if !found {
				c.Status(http.StatusNotFound)
				return
			}
			c.Data(http.StatusOK, http.DetectContentType(data), data)
		})
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/search", clientHandler.Search)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PATCH("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)
			secured.GET("/clients/:id/history", clientHandler.History)
			secured.POST("/clients/:id/history", clientHandler.AddInteraction)
			secured.POST("/clients/:id/avatar", clientHandler.UploadAvatar)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.POST("/appointments/with-payment", appointmentHandler.CreateWithPayment)
			secured.GET("/appointments/search", appointmentHandler.Search)
			secured.GET("/appointments/schedule", appointmentHandler.Schedule)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			// ------------------------------
			// PAYMENTS
			// ------------------------------
			secured.GET("/payments", paymentHandler.List)
			secured.POST("/payments", paymentHandler.Create)
			secured.GET("/payments/search", paymentHandler.Search)
			secured.POST("/payments/recompute-overdue", paymentHandler.RecomputeOverdue)
			secured.GET("/payments/:id", paymentHandler.Get)
			secured.PATCH("/payments/:id", paymentHandler.Update)
			secured.DELETE("/payments/:id", paymentHandler.Delete)
			secured.PATCH("/payments/:id/pay", paymentHandler.MarkPaid)
			secured.POST("/payments/:id/checkout", paymentHandler.Checkout)

			// ------------------------------
			// CATALOG
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)

			// ------------------------------
			// DASHBOARD & REPORTS
			// ------------------------------
			secured.GET("/dashboard/stats", dashboardHandler.Stats)
			secured.GET("/dashboard/recent-clients", dashboardHandler.RecentClients)
			secured.GET("/dashboard/monthly-revenue", dashboardHandler.MonthlyRevenue)
			secured.GET("/dashboard/performance", dashboardHandler.Performance)
			secured.GET("/reports/distributions", dashboardHandler.Distributions)
			secured.GET("/reports/clients", dashboardHandler.ClientReport)

			secured.GET("/export/:entity", exportHandler.Download)
			secured.GET("/realtime", realtimeHandler.Stream)
			secured.GET("/audit-logs", middleware.RequireRole(models.RoleOwner), auditLogsHandler.List)
		}
	}
}
