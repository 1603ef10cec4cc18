package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/crewlane/compliance-backend-go/internal/domain/compliance"
	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Compliance ComplianceConfig
	Sweep      SweepConfig
	SMTP       SMTPConfig
	CORS       CORSConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// ComplianceConfig carries the chain-rule and notice thresholds. Every
// field defaults to the statutory value and can be overridden per
// deployment.
type ComplianceConfig struct {
	Rules compliance.RuleSet
}

// SweepConfig controls the recurring compliance sweep.
type SweepConfig struct {
	Interval        time.Duration
	Concurrency     int
	DigestRecipient string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "crewlane-compliance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(dbMaxConns),
		MinConns: int32(dbMinConns),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	rules := compliance.DefaultRuleSet()
	overrides := []struct {
		env    string
		target *int
	}{
		{"COMPLIANCE_MAX_FIXED_TERM_CONTRACTS", &rules.MaxFixedTermContracts},
		{"COMPLIANCE_MAX_CHAIN_MONTHS", &rules.MaxChainMonths},
		{"COMPLIANCE_CRITICAL_CONTRACTS", &rules.CriticalContracts},
		{"COMPLIANCE_CRITICAL_MONTHS", &rules.CriticalMonths},
		{"COMPLIANCE_WARNING_MONTHS", &rules.WarningMonths},
		{"COMPLIANCE_NOTICE_WINDOW_DAYS", &rules.NoticeWindowDays},
		{"COMPLIANCE_EXPIRY_HORIZON_DAYS", &rules.ExpiryHorizonDays},
		{"COMPLIANCE_STALE_DRAFT_DAYS", &rules.StaleDraftDays},
	}
	for _, o := range overrides {
		raw := os.Getenv(o.env)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", o.env, err)
		}
		*o.target = v
	}
	config.Compliance = ComplianceConfig{Rules: rules}

	sweepInterval, err := time.ParseDuration(getEnv("SWEEP_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_INTERVAL: %w", err)
	}
	sweepConcurrency, err := strconv.Atoi(getEnv("SWEEP_CONCURRENCY", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid SWEEP_CONCURRENCY: %w", err)
	}

	config.Sweep = SweepConfig{
		Interval:        sweepInterval,
		Concurrency:     sweepConcurrency,
		DigestRecipient: getEnv("SWEEP_DIGEST_RECIPIENT", ""),
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", ""),
		FromName: getEnv("SMTP_FROM_NAME", "Crewlane Compliance"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	if c.Sweep.Interval < time.Minute {
		return fmt.Errorf("SWEEP_INTERVAL must be at least 1m")
	}
	if c.Sweep.Concurrency < 1 {
		return fmt.Errorf("SWEEP_CONCURRENCY must be at least 1")
	}

	r := c.Compliance.Rules
	if r.MaxFixedTermContracts < 1 || r.MaxChainMonths < 1 {
		return fmt.Errorf("chain-rule limits must be positive")
	}
	if r.CriticalContracts >= r.MaxFixedTermContracts {
		return fmt.Errorf("COMPLIANCE_CRITICAL_CONTRACTS must be below the contract limit")
	}
	if r.CriticalMonths >= r.MaxChainMonths {
		return fmt.Errorf("COMPLIANCE_CRITICAL_MONTHS must be below the month limit")
	}
	if r.NoticeWindowDays < 1 {
		return fmt.Errorf("COMPLIANCE_NOTICE_WINDOW_DAYS must be positive")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
