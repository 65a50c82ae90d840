package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"sales-dashboard/internal/dataset"
)

const envPrefix = "SALES"

type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Logger   LoggerConfig `envconfig:"LOG"`
	Security SecurityConfig
	Tracing  TracingConfig
}

type ServerConfig struct {
	Host            string        `default:"localhost"`
	Port            int           `default:"8084"`
	ReadTimeout     time.Duration `split_words:"true" default:"10s"`
	WriteTimeout    time.Duration `split_words:"true" default:"10s"`
	IdleTimeout     time.Duration `split_words:"true" default:"60s"`
	ShutdownTimeout time.Duration `split_words:"true" default:"30s"`
}

// DataConfig locates the transactions inside the workbook.
type DataConfig struct {
	File      string `default:"supermarkt_sales.xlsx"`
	Sheet     string `default:"Sales"`
	HeaderRow int    `split_words:"true" default:"4"`
	Columns   string `default:"B:R"`
	RowCap    int    `split_words:"true" default:"1000"`
}

type LoggerConfig struct {
	Level  string `default:"info"`
	Format string `default:"json"`
}

type SecurityConfig struct {
	EnableRateLimit bool     `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	RateLimitRPS    int      `envconfig:"RATE_LIMIT_RPS" default:"100"`
	RateLimitBurst  int      `envconfig:"RATE_LIMIT_BURST" default:"10"`
	AllowedOrigins  []string `split_words:"true" default:"http://localhost:8084"`
	TrustedProxies  []string `split_words:"true" default:"127.0.0.1"`
}

type TracingConfig struct {
	Enabled bool `default:"false"`
}

// Load reads an optional .env file, then SALES_* environment variables, and
// validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Usage prints the recognised environment variables.
func Usage() error {
	var cfg Config
	return envconfig.Usage(envPrefix, &cfg)
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Data.File == "" {
		return fmt.Errorf("data file path cannot be empty")
	}

	layout, err := c.Layout()
	if err != nil {
		return err
	}
	if err := layout.Validate(); err != nil {
		return fmt.Errorf("data layout: %w", err)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !slices.Contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	if c.Security.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit RPS must be positive")
	}

	if c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	return nil
}

// Layout converts the data settings into a workbook layout.
func (c *Config) Layout() (dataset.Layout, error) {
	first, last, err := dataset.ParseColumnRange(c.Data.Columns)
	if err != nil {
		return dataset.Layout{}, fmt.Errorf("data columns: %w", err)
	}
	return dataset.Layout{
		Sheet:       c.Data.Sheet,
		HeaderRow:   c.Data.HeaderRow,
		FirstColumn: first,
		LastColumn:  last,
		RowCap:      c.Data.RowCap,
	}, nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
