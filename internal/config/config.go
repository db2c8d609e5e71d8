package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	DatabaseURL        string
	RedisAddr          string
	RedisPassword      string
	AdminJWTSecret     string
	CORSAllowedOrigins []string

	// SlotGrid is the ordered list of daily booking slot labels.
	// The gap between 11:00 and 13:00 is the clinic lunch break.
	SlotGrid []string

	// BookingWindowDays is how many days ahead (including today) the
	// public flow offers for booking.
	BookingWindowDays int

	// Rate limiting for the public booking submit endpoint.
	BookingRatePerSec float64
	BookingRateBurst  int
}

// DefaultSlotGrid is the standard clinic day: morning block, lunch gap,
// afternoon block.
var DefaultSlotGrid = []string{
	"09:00", "10:00", "11:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil),
		SlotGrid:           getEnvAsSlice("SLOT_GRID", DefaultSlotGrid),
		BookingWindowDays:  getEnvAsInt("BOOKING_WINDOW_DAYS", 14),
		BookingRatePerSec:  getEnvAsFloat("BOOKING_RATE_PER_SEC", 5),
		BookingRateBurst:   getEnvAsInt("BOOKING_RATE_BURST", 10),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsSlice parses a comma-separated environment variable.
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
