package config

import (
	"os"
	"strconv"
	"time"

	"multiverse_backend/internal/logger"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

type Config struct {
	Env     string
	AppPort string

	StoreDriver  string
	DatabaseURL  string
	SQLitePath   string
	StoreTimeout time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	AuthRateLimit  int
	AuthRateWindow time.Duration

	ReferralBonus int64
	ReferralCap   int

	LogLevel string
}

// IsProduction reports whether the process runs under APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads .env (if present) and the process environment. Missing secrets
// are fatal.
func Load() *Config {
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init(logLevel, env == "production")

	driver := os.Getenv("STORE_DRIVER")
	if driver == "" {
		driver = StoreDriverPostgres
	}
	if driver != StoreDriverPostgres && driver != StoreDriverSQLite {
		logger.Fatal("unknown STORE_DRIVER", "driver", driver)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if driver == StoreDriverPostgres && dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "multiverse.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	// APP_PORT wins, PORT is what most hosts inject
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "5000"
	}

	return &Config{
		Env:     env,
		AppPort: port,

		StoreDriver:  driver,
		DatabaseURL:  dbURL,
		SQLitePath:   sqlitePath,
		StoreTimeout: time.Duration(envInt("STORE_TIMEOUT_SECONDS", 10)) * time.Second,

		JWTSecret: jwtSecret,
		TokenTTL:  time.Duration(envInt("TOKEN_TTL_HOURS", 7*24)) * time.Hour,

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        envInt("REDIS_DB", 0),
		AuthRateLimit:  envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow: time.Duration(envInt("AUTH_RATE_WINDOW_SECONDS", 60)) * time.Second,

		ReferralBonus: int64(envInt("REFERRAL_BONUS", 200)),
		ReferralCap:   envInt("REFERRAL_CAP", 100),

		LogLevel: logLevel,
	}
}

// envInt parses a non-negative integer variable, falling back to def.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		logger.Warn("ignoring invalid integer env var", "key", key, "value", v)
		return def
	}
	return n
}
