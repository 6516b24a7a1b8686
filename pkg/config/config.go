package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds environment-driven settings for the risk core.
type Config struct {
	// Position limits
	PositionLimitSymbol decimal.Decimal
	PositionLimitTotal  decimal.Decimal

	// Loss limits
	DailyLossLimit decimal.Decimal
	DrawdownLimit  decimal.Decimal

	// Concentration (fraction of total notional, 0..1)
	ConcentrationLimit decimal.Decimal

	// Velocity
	VelocityLimit  int
	VelocityWindow int // seconds

	// Circuit breaker
	CircuitBreakerDrawdown decimal.Decimal

	// P&L history retention (snapshots kept in memory)
	PnLHistoryLimit int

	// Alert journal database. Empty disables the journal.
	AlertDBPath string

	// Price feed
	FeedSymbols    []string
	UseMockFeed    bool
	FeedIntervalMs int
}

// Profile is an optional YAML overlay for the numeric limits. Zero values
// leave the corresponding env/default setting untouched.
type Profile struct {
	PositionLimitSymbol    float64 `yaml:"position_limit_symbol"`
	PositionLimitTotal     float64 `yaml:"position_limit_total"`
	DailyLossLimit         float64 `yaml:"daily_loss_limit"`
	ConcentrationLimit     float64 `yaml:"concentration_limit"`
	VelocityLimit          int     `yaml:"velocity_limit"`
	VelocityWindow         int     `yaml:"velocity_window"`
	DrawdownLimit          float64 `yaml:"drawdown_limit"`
	CircuitBreakerDrawdown float64 `yaml:"circuit_breaker_drawdown"`
}

// Load reads environment variables (optionally via .env) into Config.
func Load() (*Config, error) {
	// Ignore error so the app still starts when .env is missing.
	_ = godotenv.Load()

	cfg := &Config{
		PositionLimitSymbol:    getEnvDecimal("POSITION_LIMIT_SYMBOL", "10"),
		PositionLimitTotal:     getEnvDecimal("POSITION_LIMIT_TOTAL", "50"),
		DailyLossLimit:         getEnvDecimal("DAILY_LOSS_LIMIT", "1000"),
		ConcentrationLimit:     getEnvDecimal("CONCENTRATION_LIMIT", "0.5"),
		VelocityLimit:          getEnvInt("VELOCITY_LIMIT", 10),
		VelocityWindow:         getEnvInt("VELOCITY_WINDOW", 60),
		DrawdownLimit:          getEnvDecimal("DRAWDOWN_LIMIT", "500"),
		CircuitBreakerDrawdown: getEnvDecimal("CIRCUIT_BREAKER_DRAWDOWN", "1000"),
		PnLHistoryLimit:        getEnvInt("PNL_HISTORY_LIMIT", 1024),
		AlertDBPath:            getEnv("ALERT_DB_PATH", "./data/alerts.db"),
		FeedSymbols:            splitAndTrim(getEnv("FEED_SYMBOLS", "BTCUSDT,ETHUSDT")),
		UseMockFeed:            getEnv("USE_MOCK_FEED", "true") == "true",
		FeedIntervalMs:         getEnvInt("FEED_INTERVAL_MS", 1000),
	}

	if path := os.Getenv("RISK_PROFILE"); path != "" {
		if err := cfg.applyProfile(path); err != nil {
			return nil, fmt.Errorf("risk profile %s: %w", path, err)
		}
	}

	return cfg, nil
}

func (c *Config) applyProfile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return err
	}

	if p.PositionLimitSymbol > 0 {
		c.PositionLimitSymbol = decimal.NewFromFloat(p.PositionLimitSymbol)
	}
	if p.PositionLimitTotal > 0 {
		c.PositionLimitTotal = decimal.NewFromFloat(p.PositionLimitTotal)
	}
	if p.DailyLossLimit > 0 {
		c.DailyLossLimit = decimal.NewFromFloat(p.DailyLossLimit)
	}
	if p.ConcentrationLimit > 0 {
		c.ConcentrationLimit = decimal.NewFromFloat(p.ConcentrationLimit)
	}
	if p.VelocityLimit > 0 {
		c.VelocityLimit = p.VelocityLimit
	}
	if p.VelocityWindow > 0 {
		c.VelocityWindow = p.VelocityWindow
	}
	if p.DrawdownLimit > 0 {
		c.DrawdownLimit = decimal.NewFromFloat(p.DrawdownLimit)
	}
	if p.CircuitBreakerDrawdown > 0 {
		c.CircuitBreakerDrawdown = decimal.NewFromFloat(p.CircuitBreakerDrawdown)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDecimal(key, def string) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(def)
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func splitAndTrim(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
