package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration values loaded from environment
// variables. A .env file is honored when present.
type Config struct {
	Env      string
	HTTPAddr string

	MongoURI string
	MongoDB  string

	KafkaBrokers     []string
	KafkaTopicPrefix string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	TouristTaxPerAdultNight float64
	PetFeePerPet            float64
	CommissionRate          float64

	PendingTTL     time.Duration
	ExpiryInterval time.Duration

	RateLimitEnabled  bool
	RateLimitCapacity int
	RateLimitRefill   int
	RateLimitInterval time.Duration
	RateLimitTTL      time.Duration
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "villastay"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
	}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	var err error
	if cfg.RedisDB, err = parseIntEnv("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.TouristTaxPerAdultNight, err = parseFloatEnv("TOURIST_TAX_PER_ADULT_NIGHT", 1); err != nil {
		return Config{}, err
	}
	if cfg.PetFeePerPet, err = parseFloatEnv("PET_FEE_PER_PET", 20); err != nil {
		return Config{}, err
	}
	if cfg.CommissionRate, err = parseFloatEnv("COMMISSION_RATE", 0.15); err != nil {
		return Config{}, err
	}
	if cfg.PendingTTL, err = parseDurationEnv("PENDING_BOOKING_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.ExpiryInterval, err = parseDurationEnv("PENDING_EXPIRY_INTERVAL", 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitEnabled, err = parseBoolEnv("RATE_LIMIT_ENABLED", cfg.RedisAddr != ""); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitCapacity, err = parseIntEnv("RATE_LIMIT_CAPACITY", 10); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRefill, err = parseIntEnv("RATE_LIMIT_REFILL", 1); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitInterval, err = parseDurationEnv("RATE_LIMIT_INTERVAL", 6*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitTTL, err = parseDurationEnv("RATE_LIMIT_TTL", 10*time.Minute); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseBoolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func parseIntEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseFloatEnv(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
