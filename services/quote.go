package services

import "github.com/shopspring/decimal"

// LineItem is one product row. TaxedPrice and FinalPrice are derived from
// NetPrice and ExtraPercent and are never read back from storage.
type LineItem struct {
	Name         string
	Description  string
	NetPrice     decimal.Decimal
	ExtraPercent decimal.Decimal
	TaxedPrice   decimal.Decimal
	FinalPrice   decimal.Decimal
}

// CompanyInfo is the free-text header shown on exported documents.
type CompanyInfo struct {
	Name          string `json:"company_name"`
	FiscalDetails string `json:"fiscal_details"`
	Contact       string `json:"contact"`
}

// Quote is the authoritative in-memory quote. Items keep insertion order.
type Quote struct {
	Company  CompanyInfo
	LogoPath string

	items   []LineItem
	pricing PricingEngine
}

// NewQuote returns an empty quote priced with p.
func NewQuote(p PricingEngine) *Quote {
	return &Quote{pricing: p}
}

func (q *Quote) Pricing() PricingEngine { return q.pricing }

func (q *Quote) Len() int { return len(q.items) }

// Items returns a copy of the line items.
func (q *Quote) Items() []LineItem {
	out := make([]LineItem, len(q.items))
	copy(out, q.items)
	return out
}

// AddItem parses raw input, prices it and appends it. It returns the new
// total. On error the quote is unchanged.
func (q *Quote) AddItem(in ItemInput) (decimal.Decimal, error) {
	name, description, netPrice, extraPercent, err := in.Parse()
	if err != nil {
		return q.Total(), err
	}
	q.appendItem(name, description, netPrice, extraPercent)
	return q.Total(), nil
}

// AddLineItem is AddItem for already-typed values.
func (q *Quote) AddLineItem(name, description string, netPrice, extraPercent decimal.Decimal) (decimal.Decimal, error) {
	if err := validateItem(name, description, netPrice, extraPercent); err != nil {
		return q.Total(), err
	}
	q.appendItem(name, description, netPrice, extraPercent)
	return q.Total(), nil
}

func (q *Quote) appendItem(name, description string, netPrice, extraPercent decimal.Decimal) {
	taxed, final := q.pricing.ComputePrices(netPrice, extraPercent)
	q.items = append(q.items, LineItem{
		Name:         name,
		Description:  description,
		NetPrice:     netPrice,
		ExtraPercent: extraPercent,
		TaxedPrice:   taxed,
		FinalPrice:   final,
	})
}

// RemoveItem deletes the item at index, keeping the order of the rest.
func (q *Quote) RemoveItem(index int) error {
	if index < 0 || index >= len(q.items) {
		return &IndexError{Index: index, Len: len(q.items)}
	}
	items := make([]LineItem, 0, len(q.items)-1)
	items = append(items, q.items[:index]...)
	q.items = append(items, q.items[index+1:]...)
	return nil
}

// Total is the sum of every item's final price, unrounded.
func (q *Quote) Total() decimal.Decimal {
	return SumFinalPrices(q.items)
}

// Clone returns a deep copy that shares nothing mutable with q.
func (q *Quote) Clone() *Quote {
	c := *q
	c.items = q.Items()
	return &c
}
