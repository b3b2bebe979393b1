package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/clock"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/slotcache"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	clk := clock.New(cfg.ClinicTimezone)

	bookingRepo := infraRepo.NewBookingGormRepository(db)
	engine := domain.NewEngine(bookingRepo, clk.Now, cfg.SearchHorizonDays)

	var cache *slotcache.Cache
	if rdb != nil {
		cache = slotcache.New(rdb, time.Duration(cfg.SlotCacheTTLSeconds)*time.Second)
	}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES (APPOINTMENTS)
	// ======================================================
	var invalidator ucAppointment.SlotCache
	var slotSource ucAppointment.FreeSlotSource
	if cache != nil {
		invalidator = cache
		slotSource = cache
	}

	bookUC := ucAppointment.NewBookAppointment(bookingRepo, engine, invalidator, auditDispatcher)
	cancelUC := ucAppointment.NewCancelAppointment(bookingRepo, invalidator, auditDispatcher)
	listUC := ucAppointment.NewListAppointmentsByPatient(bookingRepo)
	slotsUC := ucAppointment.NewGetFreeSlots(engine, slotSource)
	nearestUC := ucAppointment.NewFindNearestSlot(engine)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher)
	patientHandler := handlers.NewPatientHandler(db)
	doctorHandler := handlers.NewDoctorHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db, clk, auditDispatcher)
	appointmentHandler := handlers.NewAppointmentHandler(bookUC, cancelUC, listUC, slotsUC, nearestUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/patients/signup", authHandler.Signup)
		api.POST("/patients/login", authHandler.Login)

		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/doctors", doctorHandler.List)
		api.GET("/doctors/:specialty", doctorHandler.ListBySpecialty)

		api.GET("/schedule", scheduleHandler.List)
		api.GET("/schedule/:id", scheduleHandler.ListByDoctor)

		api.GET("/appointments/availability", appointmentHandler.FreeSlots)
		api.GET("/appointments/nearest/:specialty", appointmentHandler.Nearest)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", patientHandler.GetMe)
			secured.PUT("/me", patientHandler.UpdateMe)

			secured.POST("/appointments/book", appointmentHandler.Book)
			secured.GET("/me/appointments", appointmentHandler.ListMine)
			secured.DELETE("/appointments/:id", appointmentHandler.Cancel)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/patients", patientHandler.List)
				admin.DELETE("/patients/:id", patientHandler.Delete)

				admin.POST("/doctors", doctorHandler.Create)

				admin.POST("/schedule", scheduleHandler.Create)
				admin.DELETE("/schedule/:id", scheduleHandler.Delete)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
