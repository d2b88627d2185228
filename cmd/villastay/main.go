package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"villastay/internal/app/schedule"
	availabilitysvc "villastay/internal/app/services/availability"
	bookingsvc "villastay/internal/app/services/booking"
	pricingsvc "villastay/internal/app/services/pricing"
	promosvc "villastay/internal/app/services/promo"
	"villastay/internal/app/uow"
	"villastay/internal/infra/broker/kafka"
	"villastay/internal/infra/config"
	mongostore "villastay/internal/infra/db/mongo"
	ginserver "villastay/internal/infra/http/gin"
	"villastay/internal/infra/obs"
	"villastay/internal/infra/ratelimit"
	"villastay/internal/infra/storage/memory"

	domainavailability "villastay/internal/domain/availability"
	domainbooking "villastay/internal/domain/booking"
	domainpricing "villastay/internal/domain/pricing"
	domainpromo "villastay/internal/domain/promo"
	domainproperty "villastay/internal/domain/property"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration load failed", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	backend, err := buildBackend(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}

	pricingService := &pricingsvc.Service{
		Properties: backend.properties,
		Periods:    backend.periods,
		Extras:     backend.extras,
		Config: pricingsvc.Config{
			TouristTaxPerAdultNight: cfg.TouristTaxPerAdultNight,
			PetFeePerPet:            cfg.PetFeePerPet,
		},
		Logger: logger,
	}
	availabilityService := &availabilitysvc.Service{
		Properties: backend.properties,
		Periods:    backend.periods,
		Bookings:   backend.bookings,
		Blocked:    backend.blocked,
	}
	promoService := &promosvc.Service{
		Promos:   backend.promos,
		Bookings: backend.bookings,
	}

	var events bookingsvc.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			logger.Error("kafka producer init failed", "error", err)
			os.Exit(1)
		}
		defer producer.Close()
		events = kafka.BookingEvents{Producer: producer, TopicPrefix: cfg.KafkaTopicPrefix}
		logger.Info("kafka events enabled", "brokers", cfg.KafkaBrokers)
	}

	bookingService := &bookingsvc.Service{
		UoW:            backend.uowFactory,
		Pricing:        pricingService,
		Availability:   availabilityService,
		Promo:          promoService,
		Events:         events,
		Logger:         logger,
		CommissionRate: cfg.CommissionRate,
	}

	var publicLimiter = buildRateLimiter(cfg, logger)

	handlers := ginserver.Handlers{
		Pricing:       ginserver.PricingHandler{Pricing: pricingService},
		Availability:  ginserver.AvailabilityHandler{Availability: availabilityService},
		Promo:         ginserver.PromoHandler{Promo: promoService},
		Booking:       ginserver.BookingHandler{Bookings: bookingService},
		BlockedPeriod: ginserver.BlockedPeriodHandler{Availability: availabilityService},
		Public:        ginserver.PublicHandler{Bookings: bookingService},
		PublicLimiter: publicLimiter,
	}
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: backend.ready,
	}, handlers)

	expiry := &schedule.ExpiryJob{
		Bookings:   bookingService,
		PendingTTL: cfg.PendingTTL,
		Interval:   cfg.ExpiryInterval,
		Logger:     logger,
	}
	if err := expiry.Start(ctx); err != nil {
		logger.Error("expiry job start failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := expiry.Stop(); err != nil {
			logger.Error("expiry job stop failed", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type storageBackend struct {
	properties domainproperty.Repository
	periods    domainpricing.PeriodRepository
	bookings   domainbooking.Repository
	blocked    domainavailability.BlockedPeriodRepository
	promos     domainpromo.Repository
	extras     pricingsvc.ExtrasCatalog
	uowFactory uow.Factory
	ready      func() error
}

// buildBackend selects Mongo when MONGO_URI is set and the in-memory store
// otherwise, keeping local runs dependency-free.
func buildBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (storageBackend, error) {
	if cfg.MongoURI == "" {
		store := memory.NewStore()
		logger.Info("using in-memory storage")
		return storageBackend{
			properties: memory.NewPropertyRepository(store),
			periods:    memory.NewPeriodRepository(store),
			bookings:   memory.NewBookingRepository(store),
			blocked:    memory.NewBlockedPeriodRepository(store),
			promos:     memory.NewPromoRepository(store),
			extras:     memory.NewExtrasCatalog(store),
			uowFactory: memory.NewFactory(store),
			ready:      func() error { return nil },
		}, nil
	}

	client, err := mongostore.New(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return storageBackend{}, err
	}
	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := client.EnsureIndexes(indexCtx); err != nil {
		return storageBackend{}, err
	}
	logger.Info("using mongo storage", "db", cfg.MongoDB)

	properties := mongostore.NewPropertyRepository(client.DB)
	periods := mongostore.NewPeriodRepository(client.DB)
	bookings := mongostore.NewBookingRepository(client.DB)
	blocked := mongostore.NewBlockedPeriodRepository(client.DB)
	promos := mongostore.NewPromoRepository(client.DB)

	return storageBackend{
		properties: properties,
		periods:    periods,
		bookings:   bookings,
		blocked:    blocked,
		promos:     promos,
		extras:     mongostore.NewExtrasCatalog(client.DB),
		uowFactory: mongostore.Factory{
			DB:             client.DB,
			PropertiesRepo: properties,
			PeriodsRepo:    periods,
			BookingsRepo:   bookings,
			BlockedRepo:    blocked,
			PromosRepo:     promos,
		},
		ready: func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		},
	}, nil
}

// buildRateLimiter wires the redis token bucket when redis is configured.
// Without redis the public surface runs unthrottled.
func buildRateLimiter(cfg config.Config, logger *slog.Logger) gin.HandlerFunc {
	if !cfg.RateLimitEnabled || cfg.RedisAddr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	logger.Info("rate limiter enabled", "redis_addr", cfg.RedisAddr)
	return ratelimit.NewTokenBucket(ratelimit.Config{
		Enabled:        true,
		Capacity:       cfg.RateLimitCapacity,
		RefillTokens:   cfg.RateLimitRefill,
		RefillInterval: cfg.RateLimitInterval,
		TTL:            cfg.RateLimitTTL,
	}, rdb)
}
