package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port        string
	DatabaseURL string
	DBTimezone  string
	AppTimezone string

	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	LogLevel  string
	LogFormat string

	CORSAllowedOrigins string

	PayrollBaseSalary     decimal.Decimal
	PayrollBonusThreshold int
	PayrollBonusPerLabel  decimal.Decimal

	SeedAdminEmail    string
	SeedAdminPassword string
}

// LoadEnvFile reads .env when present; the process environment still wins.
func LoadEnvFile() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on system env")
	}
}

func Load() Config {
	cfg := Config{
		Port:                  getenv("PORT", "3000"),
		DBTimezone:            getenv("DB_TIMEZONE", "UTC"),
		AppTimezone:           getenv("APP_TIMEZONE", "America/New_York"),
		JWTSecret:             getenv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTTTL:                getenvDuration("JWT_TTL", 24*time.Hour),
		RedisAddr:             getenv("REDIS_ADDR", ""),
		RedisPassword:         getenv("REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("REDIS_DB", 0),
		CacheTTL:              getenvDuration("CACHE_TTL", time.Minute),
		LogLevel:              getenv("LOG_LEVEL", "info"),
		LogFormat:             getenv("LOG_FORMAT", "console"),
		CORSAllowedOrigins:    getenv("CORS_ALLOWED_ORIGINS", "*"),
		PayrollBaseSalary:     getenvDecimal("PAYROLL_BASE_SALARY", decimal.NewFromInt(2000)),
		PayrollBonusThreshold: getenvInt("PAYROLL_BONUS_THRESHOLD", 500),
		PayrollBonusPerLabel:  getenvDecimal("PAYROLL_BONUS_PER_LABEL", decimal.RequireFromString("0.50")),
		SeedAdminEmail:        getenv("SEED_ADMIN_EMAIL", "admin@example.com"),
		SeedAdminPassword:     getenv("SEED_ADMIN_PASSWORD", "admin123"),
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
			getenv("DB_HOST", "localhost"),
			getenv("DB_USER", "postgres"),
			getenv("DB_PASSWORD", "postgres"),
			getenv("DB_NAME", "backoffice"),
			getenv("DB_PORT", "5432"),
			cfg.DBTimezone,
		)
	}
	return cfg
}

// Location returns the timezone work dates are computed in.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.AppTimezone)
	if err != nil {
		log.Warn().Str("timezone", c.AppTimezone).Msg("unknown APP_TIMEZONE, falling back to UTC")
		return time.UTC
	}
	return loc
}

// AllowedOrigins is CORS_ALLOWED_ORIGINS in the comma-separated form fiber's cors expects.
func (c Config) AllowedOrigins() string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ",")
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			return v
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

func getenvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if val := os.Getenv(key); val != "" {
		if d, err := decimal.NewFromString(val); err == nil {
			return d
		}
	}
	return fallback
}
