package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"QUOTE_TAX_RATE",
		"QUOTE_CURRENCY_SYMBOL",
		"QUOTE_SNAPSHOT_DIR",
		"QUOTE_DEFAULT_COMPANY",
		"QUOTE_DEFAULT_FISCAL_DETAILS",
		"QUOTE_DEFAULT_CONTACT",
		"QUOTE_DEFAULT_LOGO",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Pricing.TaxRate.String() != "0.16" {
		t.Errorf("TaxRate = %s, want 0.16", cfg.Pricing.TaxRate)
	}
	if cfg.Pricing.CurrencySymbol != "$" {
		t.Errorf("CurrencySymbol = %q, want $", cfg.Pricing.CurrencySymbol)
	}
	if cfg.Storage.SnapshotDir != "./quotes" {
		t.Errorf("SnapshotDir = %q, want ./quotes", cfg.Storage.SnapshotDir)
	}
	if d := cfg.SessionDefaults(); d.Company.Name != "" || d.LogoPath != "" {
		t.Errorf("SessionDefaults() = %+v, want empty", d)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUOTE_TAX_RATE", "0.08")
	t.Setenv("QUOTE_CURRENCY_SYMBOL", "MX$")
	t.Setenv("QUOTE_SNAPSHOT_DIR", "/var/quotes")
	t.Setenv("QUOTE_DEFAULT_COMPANY", "Acme")
	t.Setenv("QUOTE_DEFAULT_LOGO", "/srv/logo.png")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	taxed, _ := cfg.PricingEngine().ComputePrices(decimal.NewFromInt(100), decimal.Zero)
	if !taxed.Equal(decimal.NewFromInt(108)) {
		t.Errorf("taxed price at 8%% = %s, want 108", taxed)
	}

	if cfg.MoneyFormat().Symbol != "MX$" {
		t.Errorf("MoneyFormat().Symbol = %q", cfg.MoneyFormat().Symbol)
	}
	if cfg.Storage.SnapshotDir != "/var/quotes" {
		t.Errorf("SnapshotDir = %q", cfg.Storage.SnapshotDir)
	}
	d := cfg.SessionDefaults()
	if d.Company.Name != "Acme" || d.LogoPath != "/srv/logo.png" {
		t.Errorf("SessionDefaults() = %+v", d)
	}
}

func TestLoad_InvalidTaxRate(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "sixteen"},
		{"negative", "-0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("QUOTE_TAX_RATE", tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with QUOTE_TAX_RATE=%q succeeded, want error", tt.value)
			}
		})
	}
}
