package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/performance"
	"github.com/cmlabs-hris/staffperf-backend-go/internal/domain/staff"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	App      AppConfig
	Auth     AuthConfig
	Metrics  MetricsConfig
	Cron     CronConfig
}

type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int32
	MinConns    int32
	AutoMigrate bool
}

// RedisConfig holds the token blacklist store. An empty Addr keeps revocations in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string

	// AllowedOrigins lists the CORS origins of the dashboard frontend.
	AllowedOrigins []string
}

// AuthConfig holds the bcrypt hash of the manager passcode.
type AuthConfig struct {
	ManagerPasscodeHash string
}

type MetricsConfig struct {
	WindowDays              int
	TrendDays               int
	UtilizationWeight       float64
	MarginWeight            float64
	RevenueWeight           float64
	UnderUtilizedBelow      float64
	LowMarginBelow          float64
	StandardMonthlyMinutes  float64
	CommissionRate          float64
	FixedRate               float64
	SlowServiceFactor       float64
	DefaultStandardDuration int
	Concurrency             int
}

type CronConfig struct {
	Enabled         bool
	StaleShiftSchedule  string
	StaleShiftHours int
	SnapshotSchedule    string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using process environment")
	}

	var p envParser
	config := &Config{}

	config.Database = DatabaseConfig{
		Driver:      getEnv("DB_DRIVER", DriverPostgres),
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        p.int("DB_PORT", 5432),
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "staffperf"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		MaxConns:    int32(p.int("DB_MAX_CONNS", 25)),
		MinConns:    int32(p.int("DB_MIN_CONNS", 5)),
		AutoMigrate: p.bool("DB_AUTO_MIGRATE", true),
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       p.int("REDIS_DB", 0),
	}

	config.App = AppConfig{
		Port:     p.int("APP_PORT", 8080),
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "Local"),

		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	config.Auth = AuthConfig{
		ManagerPasscodeHash: getEnv("MANAGER_PASSCODE_HASH", ""),
	}

	defaults := performance.DefaultPolicy()
	config.Metrics = MetricsConfig{
		WindowDays:              p.int("METRICS_WINDOW_DAYS", defaults.WindowDays),
		TrendDays:               p.int("METRICS_TREND_DAYS", defaults.TrendDays),
		UtilizationWeight:       p.float("METRICS_WEIGHT_UTILIZATION", defaults.Weights.Utilization),
		MarginWeight:            p.float("METRICS_WEIGHT_MARGIN", defaults.Weights.Margin),
		RevenueWeight:           p.float("METRICS_WEIGHT_REVENUE", defaults.Weights.Revenue),
		UnderUtilizedBelow:      p.float("METRICS_UNDER_UTILIZED_BELOW", defaults.UnderUtilizedBelow),
		LowMarginBelow:          p.float("METRICS_LOW_MARGIN_BELOW", defaults.LowMarginBelow),
		StandardMonthlyMinutes:  p.float("METRICS_STANDARD_MONTHLY_MINUTES", defaults.StandardMonthlyMinutes),
		CommissionRate:          p.float("METRICS_COMMISSION_RATE", defaults.CommissionRates[staff.SalaryTypeCommission]),
		FixedRate:               p.float("METRICS_FIXED_RATE", defaults.CommissionRates[staff.SalaryTypeFixed]),
		SlowServiceFactor:       p.float("METRICS_SLOW_SERVICE_FACTOR", defaults.SlowServiceFactor),
		DefaultStandardDuration: p.int("METRICS_DEFAULT_STANDARD_DURATION", defaults.DefaultStandardDuration),
		Concurrency:             p.int("METRICS_CONCURRENCY", defaults.Concurrency),
	}

	config.Cron = CronConfig{
		Enabled:         p.bool("CRON_ENABLED", true),
		StaleShiftSchedule:  getEnv("CRON_STALE_SHIFT_SCHEDULE", "@hourly"),
		StaleShiftHours: p.int("CRON_STALE_SHIFT_HOURS", 16),
		SnapshotSchedule:    getEnv("CRON_SNAPSHOT_SCHEDULE", "5 0 * * 1"),
	}

	if p.err != nil {
		return nil, p.err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q", DriverPostgres, DriverMemory)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Auth.ManagerPasscodeHash == "" {
		return fmt.Errorf("MANAGER_PASSCODE_HASH is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if err := c.MetricsPolicy().Validate(); err != nil {
		return err
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location is the wall-clock zone used for check-in times and cron schedules.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

// MetricsPolicy builds the engine policy; tiers always use the defaults.
func (c *Config) MetricsPolicy() performance.Policy {
	m := c.Metrics
	policy := performance.DefaultPolicy()
	policy.WindowDays = m.WindowDays
	policy.TrendDays = m.TrendDays
	policy.Weights = performance.Weights{
		Utilization: m.UtilizationWeight,
		Margin:      m.MarginWeight,
		Revenue:     m.RevenueWeight,
	}
	policy.UnderUtilizedBelow = m.UnderUtilizedBelow
	policy.LowMarginBelow = m.LowMarginBelow
	policy.StandardMonthlyMinutes = m.StandardMonthlyMinutes
	policy.CommissionRates = map[staff.SalaryType]float64{
		staff.SalaryTypeCommission: m.CommissionRate,
		staff.SalaryTypeFixed:      m.FixedRate,
	}
	policy.DefaultCommissionRate = m.FixedRate
	policy.SlowServiceFactor = m.SlowServiceFactor
	policy.DefaultStandardDuration = m.DefaultStandardDuration
	policy.Concurrency = m.Concurrency
	return policy
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// envParser keeps the first conversion error so Load can report it once.
type envParser struct {
	err error
}

func (p *envParser) int(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return n
}

func (p *envParser) float(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		if err == nil {
			err = fmt.Errorf("%q is not a finite number", value)
		}
		p.fail(key, err)
		return fallback
	}
	return f
}

func (p *envParser) bool(key string, fallback bool) bool {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		p.fail(key, err)
		return fallback
	}
	return b
}

func (p *envParser) fail(key string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}
