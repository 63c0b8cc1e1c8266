package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ridgelinemotors/moto-reservations/internal/audit"
	"github.com/ridgelinemotors/moto-reservations/internal/config"
	"github.com/ridgelinemotors/moto-reservations/internal/handlers"
	infraRepo "github.com/ridgelinemotors/moto-reservations/internal/infra/repository"
	"github.com/ridgelinemotors/moto-reservations/internal/infra/stripegw"
	"github.com/ridgelinemotors/moto-reservations/internal/middleware"
	"github.com/ridgelinemotors/moto-reservations/internal/notify"
	"github.com/ridgelinemotors/moto-reservations/internal/settings"
	ucAdmin "github.com/ridgelinemotors/moto-reservations/internal/usecase/admin"
	ucBooking "github.com/ridgelinemotors/moto-reservations/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, rdb *redis.Client, logger *zap.Logger) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGorm(db)
	adminRepo := infraRepo.NewAdminGorm(db)

	settingsCache := settings.NewCache(bookingRepo, rdb, logger)

	gateway := stripegw.New(cfg.StripeSecretKey)

	desk := notify.NewDeskClient(cfg.ServiceDeskURL, cfg.ServiceDeskToken, logger)
	mailer := &notify.LogMailer{Logger: logger}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — RESERVATIONS
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, settingsCache)

	converterUC := ucBooking.NewConvertDraft(bookingRepo, desk, logger)

	reconcilerUC := ucBooking.NewReconcileIntent(bookingRepo, gateway)

	flowUC := ucBooking.NewReservationFlow(
		bookingRepo,
		settingsCache,
		reconcilerUC,
		converterUC,
		availabilityUC,
	)

	webhookUC := ucBooking.NewWebhookReconciler(
		bookingRepo,
		converterUC,
		mailer,
		logger,
		cfg.AdminEmail,
	)

	precheckUC := ucBooking.NewPrecheckVehicle(bookingRepo)

	confirmUC := ucBooking.NewConfirmBooking(bookingRepo, mailer, auditDispatcher, logger)
	rejectUC := ucBooking.NewRejectBooking(bookingRepo, mailer, auditDispatcher, logger)

	manageUC := ucAdmin.NewManage(adminRepo, settingsCache, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	salesHandler := handlers.NewSalesHandler(flowUC, precheckUC)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)
	webhookHandler := handlers.NewWebhookHandler(webhookUC, cfg.StripeWebhookSecret, logger)
	adminHandler := handlers.NewAdminHandler(manageUC, confirmUC, rejectUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// WEBHOOKS
	// ======================================================
	r.POST("/webhooks/stripe", webhookHandler.HandleStripe)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC RESERVATION FLOW
		// ------------------------------
		sales := api.Group("/sales")
		{
			sales.GET("/availability/dates", availabilityHandler.Dates)
			sales.GET("/availability/times", availabilityHandler.Times)

			sales.GET("/vehicles/:id/precheck", salesHandler.PrecheckVehicle)

			sales.POST("/bookings", salesHandler.StartDraft)
			sales.GET("/bookings/:token", salesHandler.GetDraft)
			sales.PATCH("/bookings/:token/details", salesHandler.UpdateDetails)
			sales.POST("/bookings/:token/payment", salesHandler.SetupPayment)
			sales.POST("/bookings/:token/enquiry", salesHandler.SubmitEnquiry)

			sales.GET("/confirmation", salesHandler.Confirmation)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN (JWT)
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/settings", adminHandler.GetSettings)
			admin.PUT("/settings", adminHandler.UpdateSettings)

			admin.GET("/blocked-dates", adminHandler.ListBlockedDates)
			admin.POST("/blocked-dates", adminHandler.CreateBlockedDate)
			admin.DELETE("/blocked-dates/:id", adminHandler.DeleteBlockedDate)

			admin.GET("/terms", adminHandler.ListTerms)
			admin.POST("/terms", adminHandler.CreateTerms)
			admin.PATCH("/terms/:id/activate", adminHandler.ActivateTerms)

			admin.GET("/vehicles", adminHandler.ListVehicles)
			admin.POST("/vehicles", adminHandler.CreateVehicle)
			admin.GET("/vehicles/:id", adminHandler.GetVehicle)
			admin.PATCH("/vehicles/:id", adminHandler.UpdateVehicle)

			admin.GET("/bookings", adminHandler.ListBookings)
			admin.GET("/bookings/:id", adminHandler.GetBooking)
			admin.PATCH("/bookings/:id/confirm", adminHandler.ConfirmBooking)
			admin.PATCH("/bookings/:id/reject", adminHandler.RejectBooking)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
