package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string

	OTLPEndpoint string

	// StoreBackend selects the durable blob backend: sqlite, postgres,
	// mysql, badger or memory.
	StoreBackend string
	StorePath    string
	StoreLatency time.Duration

	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	LayoutFrameInterval time.Duration
	CanvasWidth         float64
	CanvasHeight        float64
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "guardian"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		OTLPEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),

		StoreBackend: strings.ToLower(getenv("GUARDIAN_STORE_BACKEND", "sqlite")),
		StorePath:    getenv("GUARDIAN_STORE_PATH", "guardian.db"),
		StoreLatency: getenvDuration("GUARDIAN_STORE_LATENCY", 0),

		DBHost:     getenv("DATABASE_HOST", "localhost"),
		DBPort:     getenv("DATABASE_PORT", "5432"),
		DBName:     getenv("DATABASE_NAME", "guardian"),
		DBUser:     getenv("DATABASE_USER", "guardian"),
		DBPassword: getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:  getenv("DATABASE_SSLMODE", "disable"),

		LayoutFrameInterval: getenvDuration("GUARDIAN_LAYOUT_FRAME_INTERVAL", 33*time.Millisecond),
		CanvasWidth:         getenvFloat("GUARDIAN_CANVAS_WIDTH", 800),
		CanvasHeight:        getenvFloat("GUARDIAN_CANVAS_HEIGHT", 400),
	}
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}
