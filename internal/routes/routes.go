package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/VelvetStudioBR/studio-booking/internal/audit"
	"github.com/VelvetStudioBR/studio-booking/internal/cache"
	"github.com/VelvetStudioBR/studio-booking/internal/config"
	"github.com/VelvetStudioBR/studio-booking/internal/handlers"
	infraRepo "github.com/VelvetStudioBR/studio-booking/internal/infra/repository"
	"github.com/VelvetStudioBR/studio-booking/internal/middleware"
	"github.com/VelvetStudioBR/studio-booking/internal/mirror"
	"github.com/VelvetStudioBR/studio-booking/internal/payments"
	"github.com/VelvetStudioBR/studio-booking/internal/storage"
	"github.com/VelvetStudioBR/studio-booking/internal/timezone"
	ucBooking "github.com/VelvetStudioBR/studio-booking/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	syncer *mirror.Syncer,
	cfg *config.Config,
	log *zap.Logger,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	mirrorStore := cache.NewMirrorStore(rdb)
	recomputer := mirror.NewRecomputer(
		bookingRepo,
		mirrorStore,
		log,
		timezone.Location(""),
	)
	mirrorDispatcher := mirror.NewDispatcher(recomputer, log)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	uploader := storage.NewUploader(cfg)

	gateway, err := payments.NewMercadoPago(cfg.MercadoPagoToken)
	if err != nil {
		log.Warn("payment gateway disabled", zap.Error(err))
		gateway = nil
	}

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		mirrorDispatcher,
		auditDispatcher,
	)

	confirmBookingUC := ucBooking.NewConfirmBooking(
		bookingRepo,
		auditDispatcher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		mirrorDispatcher,
		auditDispatcher,
	)

	completeBookingUC := ucBooking.NewCompleteBooking(
		bookingRepo,
		auditDispatcher,
	)

	deleteBookingUC := ucBooking.NewDeleteBooking(
		bookingRepo,
		mirrorDispatcher,
		auditDispatcher,
	)

	listBookingsByDateUC := ucBooking.NewListBookingsByDate(bookingRepo)
	listBookingsByMonthUC := ucBooking.NewListBookingsByMonth(bookingRepo)
	getAvailabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	studioHandler := handlers.NewStudioHandler(db)

	designHandler := handlers.NewDesignHandler(db, uploader)
	blockedDayHandler := handlers.NewBlockedDayHandler(db, auditDispatcher)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		confirmBookingUC,
		cancelBookingUC,
		completeBookingUC,
		deleteBookingUC,
		listBookingsByDateUC,
		listBookingsByMonthUC,
		getAvailabilityUC,
		db,
		uploader,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		mirrorStore,
		mirrorDispatcher,
		createBookingUC,
		getAvailabilityUC,
		gateway,
		log,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	syncHandler := handlers.NewSyncHandler(syncer)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/designs", publicHandler.ListDesigns)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
			publicAPI.GET("/bookings/:code", publicHandler.GetBookingByCode)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/studio", studioHandler.GetMeStudio)
			secured.PATCH("/me/studio", studioHandler.UpdateMeStudio)

			secured.GET("/me/designs", designHandler.List)
			secured.POST("/me/designs", designHandler.Create)
			secured.PATCH("/me/designs/:id", designHandler.Update)
			secured.POST("/me/designs/:id/image", designHandler.UploadImage)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/month", bookingHandler.ListByMonth)
			secured.GET("/me/availability", bookingHandler.Availability)
			secured.PATCH("/me/bookings/:id/confirm", bookingHandler.Confirm)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/me/bookings/:id/complete", bookingHandler.Complete)
			secured.DELETE("/me/bookings/:id", bookingHandler.Delete)
			secured.POST("/me/bookings/:id/receipt", bookingHandler.UploadReceipt)

			// ------------------------------
			// BLOCKED DAYS
			// ------------------------------
			secured.GET("/me/blocked-days", blockedDayHandler.List)
			secured.PUT("/me/blocked-days/:date", blockedDayHandler.Set)
			secured.DELETE("/me/blocked-days/:date", blockedDayHandler.Clear)

			secured.POST("/me/sync-calendar", syncHandler.Run)
			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
