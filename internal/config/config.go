package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	ListenAddr  string

	// PublicOrigin is the scheme+host used when deriving shareable catalog
	// links server-side. A publish request may override it with the origin
	// the console was loaded from.
	PublicOrigin string

	OTLPEndpoint string

	RedisAddr     string
	RedisPassword string

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

	SeedDemoData bool
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")

	cfg := Config{
		AppName:       getenv("APP_SERVICE", "voca-console"),
		AppVersion:    getenv("APP_VERSION", "0.1.0"),
		Environment:   environment,
		ListenAddr:    getenv("LISTEN_ADDR", ":8080"),
		PublicOrigin:  strings.TrimRight(getenv("PUBLIC_ORIGIN", "http://localhost:8080"), "/"),
		OTLPEndpoint:  getenv("OTLP_ENDPOINT", "localhost:4317"),
		RedisAddr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		DBType:        getenv("DATABASE_TYPE", "postgres"),
		DBHost:        getenv("DATABASE_HOST", "localhost"),
		DBPort:        getenv("DATABASE_PORT", "5432"),
		DBName:        getenv("DATABASE_NAME", "voca"),
		DBUser:        getenv("DATABASE_USER", "postgres"),
		DBPassword:    getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:     getenv("DATABASE_SSLMODE", "disable"),
		SeedDemoData:  getenvBool("SEED_DEMO_DATA", environment == "development"),
	}

	cfg.DBMaxIdleConn = getenvInt("DATABASE_MAX_IDLE_CONN", 5)
	cfg.DBMaxOpenConn = getenvInt("DATABASE_MAX_OPEN_CONN", 25)
	cfg.DBConnMaxLifetime = getenvInt("DATABASE_CONN_MAX_LIFETIME", 1800)
	cfg.DBConnMaxIdleTime = getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 300)

	return cfg
}

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewCatalogLimitsHolder),
)

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

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
