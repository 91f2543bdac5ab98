package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration. Loaded once at startup and
// treated as immutable for the process lifetime.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	// Estimation settings. The rate is kept as the raw string here and
	// parsed into a decimal by the estimator module so a malformed value
	// fails startup instead of being silently defaulted.
	EstimateRate     string
	DefaultCurrency  string
	EstimatorVersion string

	Bootstrap BootstrapConfig
	RateLimit RateLimitConfig

	OtelEnabled          bool
	OtelExporterEndpoint string
	LogLevel             string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
}

type BootstrapConfig struct {
	EnsureDemoMerchant bool
	DemoStoreDomain    string
}

type RateLimitConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OptInStoreRate     float64
	OptInStoreBurst    int
	OptInEndpointRate  float64
	OptInEndpointBurst int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "offsetcf"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		EstimateRate:     getenv("ESTIMATE_RATE", "0.02"),
		DefaultCurrency:  strings.ToUpper(strings.TrimSpace(getenv("DEFAULT_CURRENCY", "USD"))),
		EstimatorVersion: getenv("ESTIMATOR_VERSION", "v0.1.0"),

		Bootstrap: BootstrapConfig{
			EnsureDemoMerchant: getenvBool("BOOTSTRAP_DEMO_MERCHANT", false),
			DemoStoreDomain:    getenv("BOOTSTRAP_DEMO_STORE", "demo.myshopify.com"),
		},

		RateLimit: RateLimitConfig{
			Enabled:            getenvBool("RATE_LIMIT_ENABLED", false),
			RedisAddr:          strings.TrimSpace(getenv("RATE_LIMIT_REDIS_ADDR", "")),
			RedisPassword:      getenv("RATE_LIMIT_REDIS_PASSWORD", ""),
			RedisDB:            int(getenvInt64("RATE_LIMIT_REDIS_DB", 0)),
			OptInStoreRate:     getenvFloat("RATE_LIMIT_OPTIN_STORE_RATE", 5),
			OptInStoreBurst:    int(getenvInt64("RATE_LIMIT_OPTIN_STORE_BURST", 20)),
			OptInEndpointRate:  getenvFloat("RATE_LIMIT_OPTIN_ENDPOINT_RATE", 100),
			OptInEndpointBurst: int(getenvInt64("RATE_LIMIT_OPTIN_ENDPOINT_BURST", 200)),
		},

		OtelEnabled:          getenvBool("OTEL_ENABLED", false),
		OtelExporterEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),
		LogLevel:             getenv("LOG_LEVEL", "info"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "offsetcf"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     int(getenvInt64("DATABASE_MAX_IDLE_CONN", 5)),
		DBMaxOpenConn:     int(getenvInt64("DATABASE_MAX_OPEN_CONN", 25)),
		DBConnMaxLifetime: int(getenvInt64("DATABASE_CONN_MAX_LIFETIME", 3600)),
		DBConnMaxIdleTime: int(getenvInt64("DATABASE_CONN_MAX_IDLE_TIME", 600)),
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
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

// Module wires application configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewWidgetDefaultsHolder),
)
