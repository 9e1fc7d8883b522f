package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	ServiceName string `yaml:"service_name"`

	Spanner struct {
		Database string `yaml:"database"`
	} `yaml:"spanner"`

	HTTP struct {
		Port string `yaml:"port"`
	} `yaml:"http"`

	DemandModel struct {
		Target      string        `yaml:"target"`
		Method      string        `yaml:"method"`
		CallTimeout time.Duration `yaml:"call_timeout"`
	} `yaml:"demand_model"`

	Retry struct {
		MaxAttempts    uint          `yaml:"max_attempts"`
		InitialBackoff time.Duration `yaml:"initial_backoff"`
		MaxBackoff     time.Duration `yaml:"max_backoff"`
	} `yaml:"retry"`

	Scoring struct {
		Concurrency int           `yaml:"concurrency"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"scoring"`

	Pricing struct {
		PriceCeiling string `yaml:"price_ceiling"`
		HistoryLimit int    `yaml:"history_limit"`
	} `yaml:"pricing"`

	Log struct {
		Mode string `yaml:"mode"`
	} `yaml:"log"`

	Tracing struct {
		Exporter string `yaml:"exporter"`
	} `yaml:"tracing"`
}

// Load reads an optional .env file and an optional YAML file, then applies
// environment variable overrides and defaults. Variables already set in the
// process environment win over .env entries.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"SERVICE_NAME":        &cfg.ServiceName,
		"SPANNER_DATABASE":    &cfg.Spanner.Database,
		"HTTP_PORT":           &cfg.HTTP.Port,
		"DEMAND_MODEL_TARGET": &cfg.DemandModel.Target,
		"DEMAND_MODEL_METHOD": &cfg.DemandModel.Method,
		"PRICE_CEILING":       &cfg.Pricing.PriceCeiling,
		"LOG_MODE":            &cfg.Log.Mode,
		"TRACING_EXPORTER":    &cfg.Tracing.Exporter,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"DEMAND_MODEL_TIMEOUT":  &cfg.DemandModel.CallTimeout,
		"RETRY_INITIAL_BACKOFF": &cfg.Retry.InitialBackoff,
		"RETRY_MAX_BACKOFF":     &cfg.Retry.MaxBackoff,
		"SCORING_TIMEOUT":       &cfg.Scoring.Timeout,
	}
	for key, dst := range durations {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}

	ints := map[string]*int{
		"SCORING_CONCURRENCY": &cfg.Scoring.Concurrency,
		"HISTORY_LIMIT":       &cfg.Pricing.HistoryLimit,
	}
	for key, dst := range ints {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}

	if v := os.Getenv("RETRY_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("RETRY_MAX_ATTEMPTS: %w", err)
		}
		cfg.Retry.MaxAttempts = uint(n)
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "fnb-pricing-service"
	}
	if cfg.Spanner.Database == "" {
		// Local emulator
		cfg.Spanner.Database = "projects/test-project/instances/dev-instance/databases/pricing-db"
	}
	if cfg.HTTP.Port == "" {
		cfg.HTTP.Port = "8080"
	}
	if cfg.DemandModel.Target == "" {
		cfg.DemandModel.Target = "localhost:9091"
	}
	if cfg.DemandModel.Method == "" {
		cfg.DemandModel.Method = "/pricing.demand.v1.DemandModel/Predict"
	}
	if cfg.DemandModel.CallTimeout == 0 {
		cfg.DemandModel.CallTimeout = 2 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = 3
	}
	if cfg.Retry.InitialBackoff == 0 {
		cfg.Retry.InitialBackoff = 50 * time.Millisecond
	}
	if cfg.Retry.MaxBackoff == 0 {
		cfg.Retry.MaxBackoff = time.Second
	}
	if cfg.Scoring.Concurrency == 0 {
		cfg.Scoring.Concurrency = 7
	}
	if cfg.Scoring.Timeout == 0 {
		cfg.Scoring.Timeout = 15 * time.Second
	}
	if cfg.Pricing.PriceCeiling == "" {
		cfg.Pricing.PriceCeiling = "1000"
	}
	if cfg.Pricing.HistoryLimit == 0 {
		cfg.Pricing.HistoryLimit = 100
	}
	if cfg.Log.Mode == "" {
		cfg.Log.Mode = "development"
	}
	if cfg.Tracing.Exporter == "" {
		cfg.Tracing.Exporter = "none"
	}
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Spanner.Database == "" {
		return fmt.Errorf("spanner.database is required")
	}
	if c.DemandModel.Target == "" {
		return fmt.Errorf("demand_model.target is required")
	}
	if c.DemandModel.CallTimeout < 0 || c.Scoring.Timeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.Retry.InitialBackoff > c.Retry.MaxBackoff {
		return fmt.Errorf("retry.initial_backoff must not exceed retry.max_backoff")
	}
	if c.Scoring.Concurrency < 1 {
		return fmt.Errorf("scoring.concurrency must be positive")
	}
	if c.Pricing.HistoryLimit < 1 {
		return fmt.Errorf("pricing.history_limit must be positive")
	}
	ceiling, err := decimal.NewFromString(c.Pricing.PriceCeiling)
	if err != nil {
		return fmt.Errorf("pricing.price_ceiling: %w", err)
	}
	if !ceiling.IsPositive() {
		return fmt.Errorf("pricing.price_ceiling must be positive")
	}
	return nil
}
