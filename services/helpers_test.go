package services

import (
	"bytes"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/shopspring/decimal"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// sampleQuote is the two-item quote used across the export tests:
// 100 net with 10% extra and 50 net with no extra, total 185.60.
func sampleQuote(t *testing.T) *Quote {
	t.Helper()
	q := NewQuote(NewPricingEngine(DefaultTaxRate))
	q.Company = CompanyInfo{
		Name:          "Acme SA de CV",
		FiscalDetails: "RFC ACM010101AAA",
		Contact:       "ventas@acme.mx",
	}
	items := []ItemInput{
		{Name: "Widget", Description: "Steel widget", NetPrice: "100", ExtraPercent: "10"},
		{Name: "Gadget", Description: "Plastic gadget", NetPrice: "50", ExtraPercent: "0"},
	}
	for _, in := range items {
		if _, err := q.AddItem(in); err != nil {
			t.Fatalf("AddItem(%+v) error = %v", in, err)
		}
	}
	return q
}

// writeTestImage saves a solid w x h image to dir/name and returns the path.
// The format follows the file extension.
func writeTestImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	path := filepath.Join(dir, name)
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save test image: %v", err)
	}
	return path
}
