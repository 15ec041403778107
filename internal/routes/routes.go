package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bookati/booking-api/internal/audit"
	"github.com/bookati/booking-api/internal/cache"
	"github.com/bookati/booking-api/internal/config"
	"github.com/bookati/booking-api/internal/handlers"
	infraRepo "github.com/bookati/booking-api/internal/infra/repository"
	"github.com/bookati/booking-api/internal/middleware"
	ucBooking "github.com/bookati/booking-api/internal/usecase/booking"
	ucSchedule "github.com/bookati/booking-api/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log *zap.Logger,
	avCache *cache.Availability,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES — SCHEDULE
	// ======================================================
	generateSlotsUC := ucSchedule.NewGenerateSlots(
		scheduleRepo,
		auditDispatcher,
		avCache,
	)

	listSlotsUC := ucSchedule.NewListSlots(scheduleRepo)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
	)

	checkInBookingUC := ucBooking.NewCheckInBooking(
		bookingRepo,
		auditDispatcher,
	)

	listBookingsUC := ucBooking.NewListBookingsByDate(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	tenantHandler := handlers.NewTenantHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	shiftHandler := handlers.NewShiftHandler(db, generateSlotsUC, listSlotsUC)
	assignmentHandler := handlers.NewAssignmentHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		cancelBookingUC,
		checkInBookingUC,
		listBookingsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, auditDispatcher, avCache)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API (booking pages)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API (tenant staff)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/tenant", tenantHandler.GetMeTenant)
			secured.PATCH("/me/tenant", tenantHandler.UpdateMeTenant)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			// ------------------------------
			// SHIFTS + SLOT GENERATION
			// ------------------------------
			secured.GET("/me/shifts", shiftHandler.List)
			secured.POST("/me/shifts", shiftHandler.Create)
			secured.PATCH("/me/shifts/:id", shiftHandler.Update)
			secured.DELETE("/me/shifts/:id", shiftHandler.Delete)
			secured.POST("/me/shifts/:id/generate-slots", shiftHandler.GenerateSlots)
			secured.GET("/me/shifts/:id/slots", shiftHandler.ListSlots)

			secured.GET("/me/employees", assignmentHandler.ListEmployees)
			secured.GET("/me/assignments", assignmentHandler.List)
			secured.POST("/me/assignments", assignmentHandler.Create)
			secured.DELETE("/me/assignments/:id", assignmentHandler.Delete)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.POST("/me/bookings/checkin", bookingHandler.CheckIn)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
