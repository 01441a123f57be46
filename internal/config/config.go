package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/sanctuary/internal/ledger"
)

// Amount is a money setting written as a decimal string ("10.00") and held in minor units.
type Amount int64

func (a *Amount) Decode(value string) error {
	cents, err := ledger.ParseAmount(value)
	if err != nil {
		return err
	}

	*a = Amount(cents)

	return nil
}

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Sanctuary"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host         string        `envconfig:"DB_HOST" default:"localhost"`
		Port         int           `envconfig:"DB_PORT" default:"5432"`
		User         string        `envconfig:"DB_USER" default:"postgres"`
		Password     string        `envconfig:"DB_PASSWORD" default:""`
		Name         string        `envconfig:"DB_NAME" default:"sanctuary"`
		LockTimeout  time.Duration `envconfig:"DB_LOCK_TIMEOUT" default:"5s"`
		MaxOpenConns int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET" required:"true"`
	}

	Withdrawal struct {
		RequiredApprovals    int      `envconfig:"WITHDRAWAL_REQUIRED_APPROVALS" default:"3"`
		MinAmount            Amount   `envconfig:"WITHDRAWAL_MIN_AMOUNT" default:"10.00"`
		Credentials          []string `envconfig:"WITHDRAWAL_APPROVAL_CREDENTIALS"`
		DailyLimit           Amount   `envconfig:"WITHDRAWAL_DAILY_LIMIT" default:"0"`
		EnforceBusinessHours bool     `envconfig:"WITHDRAWAL_ENFORCE_BUSINESS_HOURS" default:"false"`
		BusinessHoursStart   int      `envconfig:"WITHDRAWAL_BUSINESS_HOURS_START" default:"8"`
		BusinessHoursEnd     int      `envconfig:"WITHDRAWAL_BUSINESS_HOURS_END" default:"17"`
		Timezone             string   `envconfig:"WITHDRAWAL_TIMEZONE" default:"Africa/Nairobi"`
	}

	Allocation struct {
		RejectDuplicates bool `envconfig:"ALLOCATION_REJECT_DUPLICATES" default:"false"`
	}

	Transfer struct {
		GatewayURL string        `envconfig:"TRANSFER_GATEWAY_URL"`
		Token      string        `envconfig:"TRANSFER_GATEWAY_TOKEN"`
		Timeout    time.Duration `envconfig:"TRANSFER_TIMEOUT" default:"15s"`
	}

	Redis struct {
		Addr       string        `envconfig:"REDIS_ADDR"`
		Password   string        `envconfig:"REDIS_PASSWORD"`
		DB         int           `envconfig:"REDIS_DB" default:"0"`
		SummaryTTL time.Duration `envconfig:"REDIS_SUMMARY_TTL" default:"30s"`
	}

	Kafka struct {
		Brokers []string `envconfig:"KAFKA_BROKERS"`
		Topic   string   `envconfig:"KAFKA_AUDIT_TOPIC" default:"ledger.audit"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// Validate rejects combinations envconfig cannot express with tags alone.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET must not be empty")
	}

	if c.Withdrawal.RequiredApprovals < 1 {
		return fmt.Errorf("WITHDRAWAL_REQUIRED_APPROVALS must be at least 1, got %d", c.Withdrawal.RequiredApprovals)
	}

	if len(c.Withdrawal.Credentials) == 0 {
		return fmt.Errorf("WITHDRAWAL_APPROVAL_CREDENTIALS must list at least one credential")
	}

	if c.Withdrawal.MinAmount <= 0 {
		return fmt.Errorf("WITHDRAWAL_MIN_AMOUNT must be positive")
	}

	if c.Withdrawal.EnforceBusinessHours {
		start, end := c.Withdrawal.BusinessHoursStart, c.Withdrawal.BusinessHoursEnd
		if start < 0 || end > 24 || start >= end {
			return fmt.Errorf("invalid business hours %d-%d", start, end)
		}
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
