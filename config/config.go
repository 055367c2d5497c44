// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"quotebuilder/services"
)

// Config holds all application configuration.
type Config struct {
	Pricing  PricingConfig
	Storage  StorageConfig
	Defaults DefaultsConfig
}

// PricingConfig holds the tax rate and display currency.
type PricingConfig struct {
	TaxRate        decimal.Decimal
	CurrencySymbol string
}

// StorageConfig holds where quote files are saved and opened.
type StorageConfig struct {
	SnapshotDir string
}

// DefaultsConfig seeds the header of every new quote.
type DefaultsConfig struct {
	CompanyName   string
	FiscalDetails string
	Contact       string
	LogoPath      string
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() (*Config, error) {
	rate, err := getEnvDecimal("QUOTE_TAX_RATE", services.DefaultTaxRate)
	if err != nil {
		return nil, err
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("QUOTE_TAX_RATE must not be negative, got %s", rate)
	}

	return &Config{
		Pricing: PricingConfig{
			TaxRate:        rate,
			CurrencySymbol: getEnv("QUOTE_CURRENCY_SYMBOL", services.DefaultMoneyFormat.Symbol),
		},
		Storage: StorageConfig{
			SnapshotDir: getEnv("QUOTE_SNAPSHOT_DIR", "./quotes"),
		},
		Defaults: DefaultsConfig{
			CompanyName:   os.Getenv("QUOTE_DEFAULT_COMPANY"),
			FiscalDetails: os.Getenv("QUOTE_DEFAULT_FISCAL_DETAILS"),
			Contact:       os.Getenv("QUOTE_DEFAULT_CONTACT"),
			LogoPath:      os.Getenv("QUOTE_DEFAULT_LOGO"),
		},
	}, nil
}

// PricingEngine returns the engine every quote in this process is priced with.
func (c *Config) PricingEngine() services.PricingEngine {
	return services.NewPricingEngine(c.Pricing.TaxRate)
}

func (c *Config) MoneyFormat() services.MoneyFormat {
	return services.MoneyFormat{Symbol: c.Pricing.CurrencySymbol}
}

// SessionDefaults returns the header a new quote starts with.
func (c *Config) SessionDefaults() services.SessionDefaults {
	return services.SessionDefaults{
		Company: services.CompanyInfo{
			Name:          c.Defaults.CompanyName,
			FiscalDetails: c.Defaults.FiscalDetails,
			Contact:       c.Defaults.Contact,
		},
		LogoPath: c.Defaults.LogoPath,
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDecimal returns the decimal value of an environment variable or a default.
func getEnvDecimal(key string, defaultValue decimal.Decimal) (decimal.Decimal, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %q is not a number: %w", key, value, err)
	}
	return d, nil
}
