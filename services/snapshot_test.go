package services

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodeSnapshot_FieldNames(t *testing.T) {
	q := sampleQuote(t)
	q.LogoPath = "/tmp/logo.png"

	data, err := EncodeSnapshot(q)
	if err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, key := range []string{"NombreEmpresa", "DatosFiscales", "Contacto", "LogoPath", "Productos"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}

	products := doc["Productos"].([]any)
	if len(products) != 2 {
		t.Fatalf("len(Productos) = %d, want 2", len(products))
	}
	first := products[0].(map[string]any)
	if len(first) != 4 {
		t.Errorf("product keys = %v, want exactly 4 inputs", first)
	}
	if first["Nombre"] != "Widget" || first["PrecioNeto"] != float64(100) || first["PorcentajeExtra"] != float64(10) {
		t.Errorf("first product = %v", first)
	}
	if strings.Contains(string(data), "127.6") {
		t.Error("derived price written to snapshot")
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	q := sampleQuote(t)
	q.LogoPath = "logo.png"

	data, err := EncodeSnapshot(q)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeSnapshot(data, NewPricingEngine(DefaultTaxRate))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}

	if got.Company != q.Company || got.LogoPath != q.LogoPath {
		t.Errorf("header = %+v %q, want %+v %q", got.Company, got.LogoPath, q.Company, q.LogoPath)
	}
	want := q.Items()
	items := got.Items()
	if len(items) != len(want) {
		t.Fatalf("len(items) = %d, want %d", len(items), len(want))
	}
	for i := range items {
		if items[i].Name != want[i].Name || !items[i].FinalPrice.Equal(want[i].FinalPrice) {
			t.Errorf("item %d = %+v, want %+v", i, items[i], want[i])
		}
	}
	if !got.Total().Equal(dec("185.6")) {
		t.Errorf("Total() = %s, want 185.6", got.Total())
	}
}

func TestDecodeSnapshot_RecomputesWithCurrentRate(t *testing.T) {
	data := []byte(`{
  "NombreEmpresa": "Acme",
  "Productos": [
    {"Nombre": "Widget", "Descripcion": "x", "PrecioNeto": 100, "PorcentajeExtra": 10,
     "PrecioConIVA": 999, "PrecioFinal": 999}
  ]
}`)

	q, err := DecodeSnapshot(data, NewPricingEngine(dec("0.08")))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	item := q.Items()[0]
	if !item.TaxedPrice.Equal(dec("108")) || !item.FinalPrice.Equal(dec("118.8")) {
		t.Errorf("prices = (%s, %s), want (108, 118.8)", item.TaxedPrice, item.FinalPrice)
	}
}

func TestDecodeSnapshot_OptionalHeaderFields(t *testing.T) {
	q, err := DecodeSnapshot([]byte(`{"DatosFiscales": null, "Productos": []}`), NewPricingEngine(DefaultTaxRate))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if q.Company != (CompanyInfo{}) || q.LogoPath != "" {
		t.Errorf("header = %+v %q, want empty", q.Company, q.LogoPath)
	}
	if q.Len() != 0 || !q.Total().IsZero() {
		t.Errorf("empty Productos gave %d items, total %s", q.Len(), q.Total())
	}
}

func TestDecodeSnapshot_UnknownFieldsIgnored(t *testing.T) {
	data := []byte(`{"Version": 2, "Productos": [{"Nombre": "a", "Descripcion": "b", "PrecioNeto": 1, "PorcentajeExtra": 0, "Color": "red"}]}`)
	q, err := DecodeSnapshot(data, NewPricingEngine(DefaultTaxRate))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1", q.Len())
	}
}

func TestDecodeSnapshot_Malformed(t *testing.T) {
	tests := []struct {
		name       string
		data       string
		wantReason string
	}{
		{"empty input", ``, "JSON object"},
		{"array", `[]`, "JSON object"},
		{"truncated", `{"Productos": [`, "invalid JSON"},
		{"missing Productos", `{"NombreEmpresa": "a"}`, `missing "Productos"`},
		{"null Productos", `{"Productos": null}`, `missing "Productos"`},
		{"Productos not a list", `{"Productos": {}}`, "not a list"},
		{"item not an object", `{"Productos": [1]}`, "Productos[0] is not an object"},
		{"missing Nombre", `{"Productos": [{"Descripcion": "d", "PrecioNeto": 1, "PorcentajeExtra": 0}]}`, `missing "Nombre"`},
		{"missing PrecioNeto", `{"Productos": [{"Nombre": "n", "Descripcion": "d", "PorcentajeExtra": 0}]}`, `missing "PrecioNeto"`},
		{"missing PorcentajeExtra", `{"Productos": [{"Nombre": "n", "Descripcion": "d", "PrecioNeto": 1}]}`, `missing "PorcentajeExtra"`},
		{"string price", `{"Productos": [{"Nombre": "n", "Descripcion": "d", "PrecioNeto": "abc", "PorcentajeExtra": 0}]}`, "Productos[0]"},
		{"negative price", `{"Productos": [{"Nombre": "n", "Descripcion": "d", "PrecioNeto": -1, "PorcentajeExtra": 0}]}`, "Productos[0]"},
		{"second item bad", `{"Productos": [{"Nombre": "n", "Descripcion": "d", "PrecioNeto": 1, "PorcentajeExtra": 0}, {"Nombre": "n"}]}`, "Productos[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := DecodeSnapshot([]byte(tt.data), NewPricingEngine(DefaultTaxRate))
			if q != nil {
				t.Errorf("DecodeSnapshot() returned a quote with error %v", err)
			}
			var ferr *FormatError
			if !errors.As(err, &ferr) {
				t.Fatalf("DecodeSnapshot() error = %v, want *FormatError", err)
			}
			if !strings.Contains(ferr.Error(), tt.wantReason) {
				t.Errorf("error %q does not mention %q", ferr.Error(), tt.wantReason)
			}
		})
	}
}

func TestSaveAndLoadSnapshotFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Presupuesto_20260101.json")

	if err := SaveSnapshotFile(path, sampleQuote(t)); err != nil {
		t.Fatalf("SaveSnapshotFile() error = %v", err)
	}

	q, err := LoadSnapshotFile(path, NewPricingEngine(DefaultTaxRate))
	if err != nil {
		t.Fatalf("LoadSnapshotFile() error = %v", err)
	}
	if !q.Total().Equal(dec("185.6")) {
		t.Errorf("Total() = %s, want 185.6", q.Total())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the snapshot", len(entries))
	}
}

func TestSaveSnapshotFile_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.json")
	if err := SaveSnapshotFile(path, sampleQuote(t)); err != nil {
		t.Fatal(err)
	}
	if err := SaveSnapshotFile(path, NewQuote(NewPricingEngine(DefaultTaxRate))); err != nil {
		t.Fatal(err)
	}
	q, err := LoadSnapshotFile(path, NewPricingEngine(DefaultTaxRate))
	if err != nil {
		t.Fatal(err)
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d after overwrite, want 0", q.Len())
	}
}

func TestSaveSnapshotFile_BadDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "q.json")
	err := SaveSnapshotFile(path, sampleQuote(t))

	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("SaveSnapshotFile() error = %v, want *IOError", err)
	}
	if ioErr.Op != "write" {
		t.Errorf("Op = %q, want write", ioErr.Op)
	}
}

func TestLoadSnapshotFile_Missing(t *testing.T) {
	_, err := LoadSnapshotFile(filepath.Join(t.TempDir(), "nope.json"), NewPricingEngine(DefaultTaxRate))
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("LoadSnapshotFile() error = %v, want *IOError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v does not wrap os.ErrNotExist", err)
	}
}
