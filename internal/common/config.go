// Package common provides shared utilities for riskpilot
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for riskpilot
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Clients     ClientsConfig   `toml:"clients"`
	Session     SessionConfig   `toml:"session"`
	Portfolio   PortfolioConfig `toml:"portfolio"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	RiskAPI RiskAPIConfig `toml:"risk_api"`
	FMP     FMPConfig     `toml:"fmp"`
}

// RiskAPIConfig holds the remote analytics backend configuration
type RiskAPIConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *RiskAPIConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// FMPConfig holds the price data API configuration
type FMPConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *FMPConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// SessionConfig holds session token configuration
type SessionConfig struct {
	Secret      string `toml:"secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *SessionConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// PortfolioConfig holds the default portfolio seeded into new sessions
type PortfolioConfig struct {
	DefaultSymbols    []string `toml:"default_symbols"`
	DefaultInvestment float64  `toml:"default_investment"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Clients: ClientsConfig{
			RiskAPI: RiskAPIConfig{
				BaseURL:   "https://risk-analysis-api.onrender.com",
				RateLimit: 10,
				Timeout:   "30s",
			},
			FMP: FMPConfig{
				BaseURL:   "https://financialmodelingprep.com/api/v3",
				RateLimit: 5,
				Timeout:   "10s",
			},
		},
		Session: SessionConfig{
			Secret:      "dev-session-secret-change-in-production",
			TokenExpiry: "24h",
		},
		Portfolio: PortfolioConfig{
			DefaultSymbols:    []string{"AAPL", "MSFT", "GOOGL", "NVDA"},
			DefaultInvestment: 100000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Apply environment overrides
	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("RISKPILOT_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("RISKPILOT_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("RISKPILOT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("RISKPILOT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	// API_BASE_URL matches the convention the deployed front end uses
	if base := os.Getenv("API_BASE_URL"); base != "" {
		config.Clients.RiskAPI.BaseURL = base
	}
	if base := os.Getenv("RISKPILOT_RISK_API_URL"); base != "" {
		config.Clients.RiskAPI.BaseURL = base
	}

	if key := os.Getenv("FMP_API_KEY"); key != "" {
		config.Clients.FMP.APIKey = key
	}

	if v := os.Getenv("RISKPILOT_SESSION_SECRET"); v != "" {
		config.Session.Secret = v
	}
	if v := os.Getenv("RISKPILOT_SESSION_EXPIRY"); v != "" {
		config.Session.TokenExpiry = v
	}

	if v := os.Getenv("RISKPILOT_DEFAULT_INVESTMENT"); v != "" {
		if amount, err := strconv.ParseFloat(v, 64); err == nil && amount > 0 {
			config.Portfolio.DefaultInvestment = amount
		}
	}

	if v := os.Getenv("RISKPILOT_DEFAULT_SYMBOLS"); v != "" {
		var symbols []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, strings.ToUpper(s))
			}
		}
		if len(symbols) > 0 {
			config.Portfolio.DefaultSymbols = symbols
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// RiskAPIBaseURL returns the analytics backend base URL with any trailing slash trimmed.
func (c *Config) RiskAPIBaseURL() string {
	return strings.TrimRight(c.Clients.RiskAPI.BaseURL, "/")
}

// FMPBaseURL returns the price API base URL with any trailing slash trimmed.
func (c *Config) FMPBaseURL() string {
	return strings.TrimRight(c.Clients.FMP.BaseURL, "/")
}
