package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/weekly-availability/internal/audit"
	"github.com/BruksfildServices01/weekly-availability/internal/config"
	domain "github.com/BruksfildServices01/weekly-availability/internal/domain/availability"
	"github.com/BruksfildServices01/weekly-availability/internal/domain/user"
	"github.com/BruksfildServices01/weekly-availability/internal/handlers"
	"github.com/BruksfildServices01/weekly-availability/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/weekly-availability/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/weekly-availability/internal/usecase/booking"
)

// Deps are the process wide singletons the routes are built from.
type Deps struct {
	Config     *config.Config
	Log        *zap.Logger
	Repository domain.Repository
	Users      user.Repository
	SlotCache  domain.SlotCache
	Audit      *audit.Dispatcher
	AuditLogs  audit.Reader
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Log),
		middleware.AccessLog(d.Log),
		middleware.CORSMiddleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// USE CASES
	// ======================================================
	createWindowUC := ucAvailability.NewCreateWindow(d.Repository, d.SlotCache, d.Audit)
	updateWindowUC := ucAvailability.NewUpdateWindow(d.Repository, d.SlotCache, d.Audit)
	deleteWindowUC := ucAvailability.NewDeleteWindow(d.Repository, d.SlotCache, d.Audit)
	getWindowUC := ucAvailability.NewGetWindow(d.Repository)
	listWindowsUC := ucAvailability.NewListWindows(d.Repository)

	createBookingUC := ucBooking.NewCreateBooking(d.Repository, d.SlotCache, d.Audit)
	deleteBookingUC := ucBooking.NewDeleteBooking(d.Repository, d.SlotCache, d.Audit)
	getBookingUC := ucBooking.NewGetBooking(d.Repository)
	listBookingsUC := ucBooking.NewListBookings(d.Repository)
	findSlotsUC := ucBooking.NewFindAvailableSlots(d.Repository, d.SlotCache)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Users, d.Config.JWTSecret, d.Config.JWTTTL, d.Log)
	meHandler := handlers.NewMeHandler(d.Users)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)

	availabilityHandler := handlers.NewAvailabilityHandler(
		createWindowUC,
		updateWindowUC,
		deleteWindowUC,
		getWindowUC,
		listWindowsUC,
	)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		deleteBookingUC,
		getBookingUC,
		listBookingsUC,
		findSlotsUC,
	)

	auth := middleware.AuthMiddleware(d.Config.JWTSecret)
	limiter := middleware.NewRateLimiter(
		d.Config.RateLimitPerMinute,
		d.Config.RateLimitBurst,
		d.Log,
	)

	api := r.Group("/api")

	// ======================================================
	// AUTH
	// ======================================================
	api.POST("/auth/register", limiter.Middleware(), authHandler.Register)
	api.POST("/auth/login", limiter.Middleware(), authHandler.Login)

	me := api.Group("/me", auth)
	{
		me.GET("", meHandler.GetMe)
		me.GET("/audit-logs", auditLogsHandler.List)
	}

	// ======================================================
	// AVAILABILITY
	// ======================================================
	availability := api.Group("/availability")
	{
		availability.GET("", availabilityHandler.List)
		availability.GET("/:id", availabilityHandler.Get)
		availability.POST("", auth, availabilityHandler.Create)
		availability.PUT("/:id", auth, availabilityHandler.Update)
		availability.DELETE("/:id", auth, availabilityHandler.Delete)
	}

	// ======================================================
	// BOOKINGS
	// ======================================================
	bookings := api.Group("/bookings")
	{
		bookings.GET("", bookingHandler.List)
		bookings.GET("/available-slots", limiter.Middleware(), bookingHandler.AvailableSlots)
		bookings.GET("/:id", bookingHandler.Get)
		bookings.POST("", limiter.Middleware(), bookingHandler.Create)
		bookings.DELETE("/:id", auth, bookingHandler.Delete)
	}
}
