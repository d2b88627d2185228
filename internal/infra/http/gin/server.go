package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"villastay/internal/infra/config"
	"villastay/internal/infra/obs"
)

type PricingHTTP interface {
	Quote(c *gin.Context)
}

type AvailabilityHTTP interface {
	Check(c *gin.Context)
	Calendar(c *gin.Context)
}

type PromoHTTP interface {
	Validate(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	Confirm(c *gin.Context)
	Cancel(c *gin.Context)
	Complete(c *gin.Context)
	NoShow(c *gin.Context)
	NextReference(c *gin.Context)
}

type BlockedPeriodHTTP interface {
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	List(c *gin.Context)
}

type PublicHTTP interface {
	Lookup(c *gin.Context)
}

type Handlers struct {
	Pricing       PricingHTTP
	Availability  AvailabilityHTTP
	Promo         PromoHTTP
	Booking       BookingHTTP
	BlockedPeriod BlockedPeriodHTTP
	Public        PublicHTTP

	// PublicLimiter throttles the unauthenticated lookup surface.
	PublicLimiter gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Tenant-ID"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	api.Use(TenantRequired())

	if h.Pricing != nil {
		api.POST("/pricing/quote", h.Pricing.Quote)
	}
	if h.Availability != nil {
		api.POST("/availability/check", h.Availability.Check)
		api.GET("/properties/:id/calendar", h.Availability.Calendar)
	}
	if h.Promo != nil {
		api.GET("/promocodes/validate", h.Promo.Validate)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
		api.GET("/bookings/:id", h.Booking.Get)
		api.POST("/bookings/:id/confirm", h.Booking.Confirm)
		api.POST("/bookings/:id/cancel", h.Booking.Cancel)
		api.POST("/bookings/:id/complete", h.Booking.Complete)
		api.POST("/bookings/:id/no-show", h.Booking.NoShow)
		api.GET("/bookings/next-reference", h.Booking.NextReference)
	}
	if h.BlockedPeriod != nil {
		api.GET("/blocked-periods", h.BlockedPeriod.List)
		api.POST("/blocked-periods", h.BlockedPeriod.Create)
		api.PATCH("/blocked-periods/:id", h.BlockedPeriod.Update)
		api.DELETE("/blocked-periods/:id", h.BlockedPeriod.Delete)
	}
	if h.Public != nil {
		public := api.Group("/public")
		if h.PublicLimiter != nil {
			public.Use(h.PublicLimiter)
		}
		public.POST("/bookings/lookup", h.Public.Lookup)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
