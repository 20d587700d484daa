// Package config loads the application configuration: config.toml beside the
// executable, overlaid with environment variables (optionally from a .env
// file).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/Jhonny97or/Skus-Diarios/internal/model"
	"github.com/Jhonny97or/Skus-Diarios/internal/resolver"
)

// AppConfig is the full configuration surface.
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Weights WeightsConfig `toml:"weights"`
	Pricing PricingConfig `toml:"pricing"`
	Weeks   WeeksConfig   `toml:"weeks"`
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// WeightsConfig is the default day-of-week weight profile. The weights need
// not sum to 1; the distributor conserves the weekly total either way.
type WeightsConfig struct {
	Monday    float64 `toml:"monday"`
	Tuesday   float64 `toml:"tuesday"`
	Wednesday float64 `toml:"wednesday"`
	Thursday  float64 `toml:"thursday"`
	Friday    float64 `toml:"friday"`
	Saturday  float64 `toml:"saturday"`
	Sunday    float64 `toml:"sunday"`
}

// Profile converts the config weights into a weight profile.
func (w WeightsConfig) Profile() model.WeightProfile {
	return model.WeightProfile{
		model.Monday:    w.Monday,
		model.Tuesday:   w.Tuesday,
		model.Wednesday: w.Wednesday,
		model.Thursday:  w.Thursday,
		model.Friday:    w.Friday,
		model.Saturday:  w.Saturday,
		model.Sunday:    w.Sunday,
	}
}

// PricingConfig holds the fixed unit price applied to every quantity.
type PricingConfig struct {
	UnitPrice float64 `toml:"unit_price"`
}

// WeeksConfig selects the default week resolution policy.
type WeeksConfig struct {
	Strategy string `toml:"strategy"`
	// Year anchors date-range headers such as "sep 21 - 27".
	Year int `toml:"year"`
	// Origin (YYYY-MM-DD) is the first week's start date for the sequential
	// and prefix strategies.
	Origin string `toml:"origin"`
}

// OriginDate parses the configured origin, zero when unset.
func (w WeeksConfig) OriginDate() (time.Time, error) {
	if w.Origin == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", w.Origin)
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() *AppConfig {
	weights := model.DefaultWeightProfile()
	return &AppConfig{
		Server: ServerConfig{
			Port:    20280,
			DevMode: false,
		},
		Weights: WeightsConfig{
			Monday:    weights[model.Monday],
			Tuesday:   weights[model.Tuesday],
			Wednesday: weights[model.Wednesday],
			Thursday:  weights[model.Thursday],
			Friday:    weights[model.Friday],
			Saturday:  weights[model.Saturday],
			Sunday:    weights[model.Sunday],
		},
		Pricing: PricingConfig{
			UnitPrice: 12,
		},
		Weeks: WeeksConfig{
			Strategy: string(resolver.StrategyDateRange),
			Year:     2025,
		},
	}
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig loads config.toml from the executable's directory, falls back to
// defaults when the file is absent, then applies environment overrides.
func LoadConfig() (*AppConfig, error) {
	cfg := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configPath, err)
		}
	case os.IsNotExist(err):
		// No config file; defaults apply.
	default:
		return nil, err
	}

	// Missing .env files are fine; configuration may come from the
	// environment directly.
	_ = godotenv.Load()
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(cfg *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0644)
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("SKUS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SKUS_UNIT_PRICE"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Pricing.UnitPrice = price
		}
	}
	if v := os.Getenv("SKUS_WEEK_STRATEGY"); v != "" {
		cfg.Weeks.Strategy = v
	}
	if v := os.Getenv("SKUS_WEEK_YEAR"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			cfg.Weeks.Year = year
		}
	}
	if v := os.Getenv("SKUS_WEEK_ORIGIN"); v != "" {
		cfg.Weeks.Origin = v
	}
}

// Validate ensures the configuration is usable.
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if err := c.Weights.Profile().Validate(); err != nil {
		return err
	}
	if c.Pricing.UnitPrice <= 0 {
		return fmt.Errorf("pricing.unit_price must be positive, got %v", c.Pricing.UnitPrice)
	}
	if !resolver.Strategy(c.Weeks.Strategy).Valid() {
		return fmt.Errorf("weeks.strategy %q is not one of %v", c.Weeks.Strategy, resolver.Known())
	}
	if _, err := c.Weeks.OriginDate(); err != nil {
		return fmt.Errorf("weeks.origin: %w", err)
	}
	return nil
}
