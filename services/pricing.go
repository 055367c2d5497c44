// Package services provides pricing, the quote model, persistence and export for quotes.
package services

import "github.com/shopspring/decimal"

// DefaultTaxRate is the single tax rate applied to every line item (16%).
var DefaultTaxRate = decimal.RequireFromString("0.16")

var one = decimal.NewFromInt(1)

// PricingEngine turns a net price and an extra percentage into the taxed and
// final price tiers. The zero value applies no tax.
type PricingEngine struct {
	TaxRate decimal.Decimal
}

func NewPricingEngine(taxRate decimal.Decimal) PricingEngine {
	return PricingEngine{TaxRate: taxRate}
}

// ComputePrices returns taxed = net * (1 + TaxRate) and
// final = taxed * (1 + extraPercent/100). Nothing is rounded here.
func (p PricingEngine) ComputePrices(netPrice, extraPercent decimal.Decimal) (taxed, final decimal.Decimal) {
	taxed = netPrice.Mul(one.Add(p.TaxRate))
	final = taxed.Mul(one.Add(extraPercent.Shift(-2)))
	return taxed, final
}

// SumFinalPrices adds up the final price of every item.
func SumFinalPrices(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.FinalPrice)
	}
	return total
}
