package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	"github.com/BruksfildServices01/crm-manager/internal/checkout"
	"github.com/BruksfildServices01/crm-manager/internal/config"
	dbpkg "github.com/BruksfildServices01/crm-manager/internal/db"
	infraRepo "github.com/BruksfildServices01/crm-manager/internal/infra/repository"
	"github.com/BruksfildServices01/crm-manager/internal/middleware"
	"github.com/BruksfildServices01/crm-manager/internal/notify"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
	"github.com/BruksfildServices01/crm-manager/internal/routes"
	"github.com/BruksfildServices01/crm-manager/internal/scheduler"
	"github.com/BruksfildServices01/crm-manager/internal/storage"
	"github.com/BruksfildServices01/crm-manager/internal/timezone"
	ucPayment "github.com/BruksfildServices01/crm-manager/internal/usecase/payment"
	"github.com/BruksfildServices01/crm-manager/internal/usecase/reminder"
)

func main() {

	cfg := config.Load()
	if err := config.CheckEnv(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := dbpkg.NewDB(cfg)

	// ======================================================
	// ADAPTERS
	// ======================================================
	var broker realtime.Broker = realtime.NewMemoryBroker()
	if cfg.RedisURL != "" {
		rb, err := realtime.NewRedisBroker(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		broker = rb
	}
	defer broker.Close()

	var store storage.Store = storage.NewMemoryStore("/files")
	if cfg.S3Enabled() {
		store = storage.NewS3Store(cfg)
	}

	var gateway checkout.Gateway = checkout.Disabled{}
	if cfg.MercadoPagoToken != "" {
		mp, err := checkout.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			log.Fatalf("failed to configure mercadopago: %v", err)
		}
		gateway = mp
	}

	var sender notify.Sender = notify.Disabled{}
	if cfg.TwilioEnabled() {
		sender = notify.NewTwilio(cfg)
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	// ======================================================
	// JOBS
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	paymentRepo := infraRepo.NewPaymentGormRepository(db)

	recomputeOverdue := ucPayment.NewRecomputeOverdue(paymentRepo, auditDispatcher, broker)
	sendReminders := reminder.NewSendReminders(appointmentRepo, sender, auditDispatcher)

	overdueJob := func(ctx context.Context) error {
		n, err := recomputeOverdue.Execute(ctx, uuid.Nil)
		if err == nil && n > 0 {
			log.Printf("overdue: %d payments marked", n)
		}
		return err
	}
	reminderJob := func(ctx context.Context) error {
		res, err := sendReminders.Execute(ctx)
		if errors.Is(err, notify.ErrDisabled) {
			return nil
		}
		if err == nil {
			log.Printf("reminders for %s: %d sent, %d failed", res.Date, res.Sent, res.Failed)
		}
		return err
	}

	jobs := scheduler.New(timezone.Location(cfg.AppTimezone))
	if err := jobs.Add("overdue", cfg.OverdueCron, overdueJob); err != nil {
		log.Fatalf("invalid OVERDUE_CRON: %v", err)
	}
	if err := jobs.Add("reminders", cfg.ReminderCron, reminderJob); err != nil {
		log.Fatalf("invalid REMINDER_CRON: %v", err)
	}
	jobs.RunNow("overdue", overdueJob)
	jobs.Start()
	defer jobs.Stop()

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins...))
	r.Use(middleware.RequestTiming())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"app":     cfg.AppName,
			"version": cfg.AppVersion,
		})
	})

	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Audit:   auditDispatcher,
		Broker:  broker,
		Store:   store,
		Gateway: gateway,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
