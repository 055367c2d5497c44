package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputePrices(t *testing.T) {
	tests := []struct {
		name      string
		net       string
		extra     string
		wantTaxed string
		wantFinal string
	}{
		{"net 100 extra 10", "100", "10", "116", "127.6"},
		{"net 50 no extra", "50", "0", "58", "58"},
		{"zero net", "0", "25", "0", "0"},
		{"fractional net", "19.99", "0", "23.1884", "23.1884"},
		{"fractional extra", "10", "12.5", "11.6", "13.05"},
		{"full discount", "80", "-100", "92.8", "0"},
		{"half discount", "100", "-50", "116", "58"},
	}

	p := NewPricingEngine(DefaultTaxRate)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taxed, final := p.ComputePrices(dec(tt.net), dec(tt.extra))
			if !taxed.Equal(dec(tt.wantTaxed)) {
				t.Errorf("taxed = %s, want %s", taxed, tt.wantTaxed)
			}
			if !final.Equal(dec(tt.wantFinal)) {
				t.Errorf("final = %s, want %s", final, tt.wantFinal)
			}
		})
	}
}

func TestComputePrices_DisplayRounding(t *testing.T) {
	p := NewPricingEngine(DefaultTaxRate)
	taxed, final := p.ComputePrices(dec("100"), dec("10"))

	if got := taxed.StringFixed(2); got != "116.00" {
		t.Errorf("taxed = %s, want 116.00", got)
	}
	if got := final.StringFixed(2); got != "127.60" {
		t.Errorf("final = %s, want 127.60", got)
	}
}

func TestComputePrices_NoIntermediateRounding(t *testing.T) {
	// 0.015 * 1.16 = 0.0174; rounding taxed first would give 0.02.
	p := NewPricingEngine(DefaultTaxRate)
	taxed, final := p.ComputePrices(dec("0.015"), dec("0"))

	if !taxed.Equal(dec("0.0174")) {
		t.Errorf("taxed = %s, want 0.0174", taxed)
	}
	if !final.Equal(taxed) {
		t.Errorf("final = %s, want %s", final, taxed)
	}
}

func TestComputePrices_Properties(t *testing.T) {
	p := NewPricingEngine(DefaultTaxRate)
	nets := []string{"0", "0.01", "1", "99.99", "1000", "123456.789"}
	extras := []string{"0", "1", "10", "33.3", "100", "250"}

	for _, n := range nets {
		for _, e := range extras {
			net, extra := dec(n), dec(e)
			taxed, final := p.ComputePrices(net, extra)

			if taxed.LessThan(net) {
				t.Errorf("net=%s: taxed %s < net", n, taxed)
			}
			if final.LessThan(taxed) {
				t.Errorf("net=%s extra=%s: final %s < taxed %s", n, e, final, taxed)
			}
			if e == "0" && !final.Equal(taxed) {
				t.Errorf("net=%s: final %s != taxed %s with zero extra", n, final, taxed)
			}
		}
	}
}

func TestComputePrices_Deterministic(t *testing.T) {
	p := NewPricingEngine(DefaultTaxRate)
	taxed1, final1 := p.ComputePrices(dec("333.33"), dec("7.5"))
	for i := 0; i < 10; i++ {
		taxed2, final2 := p.ComputePrices(dec("333.33"), dec("7.5"))
		if taxed1.String() != taxed2.String() || final1.String() != final2.String() {
			t.Fatalf("run %d: got (%s, %s), want (%s, %s)", i, taxed2, final2, taxed1, final1)
		}
	}
}

func TestComputePrices_CustomRate(t *testing.T) {
	p := NewPricingEngine(dec("0.08"))
	taxed, final := p.ComputePrices(dec("100"), dec("10"))

	if !taxed.Equal(dec("108")) {
		t.Errorf("taxed = %s, want 108", taxed)
	}
	if !final.Equal(dec("118.8")) {
		t.Errorf("final = %s, want 118.8", final)
	}
}

func TestSumFinalPrices(t *testing.T) {
	tests := []struct {
		name   string
		finals []string
		want   string
	}{
		{"empty", nil, "0"},
		{"single", []string{"127.6"}, "127.6"},
		{"two items", []string{"127.6", "58"}, "185.6"},
		{"unrounded parts", []string{"0.005", "0.005"}, "0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]LineItem, len(tt.finals))
			for i, f := range tt.finals {
				items[i] = LineItem{FinalPrice: dec(f)}
			}
			got := SumFinalPrices(items)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("SumFinalPrices() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPricingEngine_ZeroValue(t *testing.T) {
	var p PricingEngine
	taxed, final := p.ComputePrices(dec("10"), dec("0"))
	if !taxed.Equal(decimal.NewFromInt(10)) || !final.Equal(decimal.NewFromInt(10)) {
		t.Errorf("zero-rate engine gave (%s, %s), want (10, 10)", taxed, final)
	}
}
