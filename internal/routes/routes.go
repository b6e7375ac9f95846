package routes

import (
	"log"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/groom-scheduler/internal/audit"
	"github.com/BruksfildServices01/groom-scheduler/internal/config"
	"github.com/BruksfildServices01/groom-scheduler/internal/featuregate"
	"github.com/BruksfildServices01/groom-scheduler/internal/handlers"
	"github.com/BruksfildServices01/groom-scheduler/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/groom-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/groom-scheduler/internal/middleware"
	"github.com/BruksfildServices01/groom-scheduler/internal/notify"
	ucAppointment "github.com/BruksfildServices01/groom-scheduler/internal/usecase/appointment"
	ucAuditLog "github.com/BruksfildServices01/groom-scheduler/internal/usecase/auditlog"
)

func newLocker(cfg *config.Config) lock.Locker {
	if cfg.RedisURL == "" {
		return lock.NewKeyedMutex()
	}

	l, err := lock.NewRedisLockerFromURL(cfg.RedisURL, time.Duration(cfg.LockTTLSeconds)*time.Second)
	if err != nil {
		log.Printf("redis locker disabled: %v", err)
		return lock.NewKeyedMutex()
	}
	return l
}

func newSender(cfg *config.Config) notify.Sender {
	if !cfg.TwilioEnabled() {
		return notify.LogSender{}
	}
	return notify.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
}

// RegisterRoutes wires the API onto r. The returned func drains the async
// dispatchers and must run on shutdown; calling it again is a no-op.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) func() {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	notifier := notify.NewDispatcher(newSender(cfg))
	locker := newLocker(cfg)
	gate := featuregate.NewPlanGate()

	// ======================================================
	// USE CASES
	// ======================================================
	quoteUC := ucAppointment.NewQuote(appointmentRepo)

	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		locker,
		gate,
		auditDispatcher,
		notifier,
	)

	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listAuditLogsUC := ucAuditLog.NewListAuditLogs(
		appointmentRepo,
		infraRepo.NewAuditLogGormRepository(db),
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(
		db,
		appointmentRepo,
		quoteUC,
		availabilityUC,
		createAppointmentUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		appointmentRepo,
		createAppointmentUC,
		updateStatusUC,
		listAppointmentsByDateUC,
		availabilityUC,
	)

	serviceHandler := handlers.NewServiceHandler(db)
	businessHoursHandler := handlers.NewBusinessHoursHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(listAuditLogsUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public/:slug")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.POST("/quote", publicHandler.Quote)
			publicAPI.POST("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// STAFF
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/business-hours", businessHoursHandler.Get)
			secured.PUT("/me/business-hours", businessHoursHandler.Update)

			secured.GET("/me/availability", appointmentHandler.Availability)

			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/me/appointments/:id/status", appointmentHandler.UpdateStatus)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			auditDispatcher.Close()
			notifier.Close()
			if rl, ok := locker.(*lock.RedisLocker); ok {
				_ = rl.Close()
			}
		})
	}
}
