package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyFormat renders amounts for display and export.
type MoneyFormat struct {
	Symbol string
}

// DefaultMoneyFormat uses a dollar sign.
var DefaultMoneyFormat = MoneyFormat{Symbol: "$"}

// Format rounds half away from zero to 2 places and groups thousands with
// commas, e.g. $1,234.56 or -$0.50.
func (f MoneyFormat) Format(amount decimal.Decimal) string {
	raw := amount.StringFixed(2)

	negative := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	parts := strings.SplitN(raw, ".", 2)
	result := f.Symbol + applyThousandsGrouping(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// ExcelNumberFormat is the spreadsheet number format equivalent of Format.
func (f MoneyFormat) ExcelNumberFormat() string {
	if f.Symbol == "" {
		return "#,##0.00"
	}
	return `"` + strings.ReplaceAll(f.Symbol, `"`, `""`) + `"#,##0.00`
}

// applyThousandsGrouping inserts a comma every 3 digits from the right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPercent renders an extra percentage without trailing zeros, e.g. 12.5%.
func FormatPercent(p decimal.Decimal) string {
	return p.String() + "%"
}

// DefaultFileName is the suggested file name for a quote saved or exported on t.
func DefaultFileName(t time.Time, ext string) string {
	return "Presupuesto_" + t.Format("20060102") + ext
}
