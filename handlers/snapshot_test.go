package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quotebuilder/services"
)

const validSnapshot = `{
  "NombreEmpresa": "Acme",
  "DatosFiscales": "RFC ACM010101AAA",
  "Contacto": "ventas@acme.mx",
  "LogoPath": "",
  "Productos": [
    {"Nombre": "Widget", "Descripcion": "Steel", "PrecioNeto": 100, "PorcentajeExtra": 10}
  ]
}`

func TestHandleQuoteSnapshotUpload(t *testing.T) {
	cfg := newTestConfig(t)
	s := newTestSession(t, cfg)

	req := jsonRequest(http.MethodPost, "/api/quote/snapshot", validSnapshot)
	rec := httptest.NewRecorder()
	if err := HandleQuoteSnapshotUpload(s, cfg)(newTestRequestEvent(nil, req, rec)); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	view := decodeBody[QuoteView](t, rec.Body)
	if view.Company.Name != "Acme" || len(view.Items) != 1 || view.Total != "127.60" {
		t.Errorf("view = %+v", view)
	}
}

func TestHandleQuoteSnapshotUpload_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "hello"},
		{"array", "[]"},
		{"missing products", `{"NombreEmpresa": "x"}`},
		{"missing price", `{"Productos": [{"Nombre": "a", "Descripcion": "b", "PorcentajeExtra": 0}]}`},
		{"text price", `{"Productos": [{"Nombre": "a", "Descripcion": "b", "PrecioNeto": "cien", "PorcentajeExtra": 0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t)
			s := newTestSession(t, cfg)
			addTestItems(t, s)

			req := jsonRequest(http.MethodPost, "/api/quote/snapshot", tt.body)
			rec := httptest.NewRecorder()
			if err := HandleQuoteSnapshotUpload(s, cfg)(newTestRequestEvent(nil, req, rec)); err != nil {
				t.Fatal(err)
			}

			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", rec.Code)
			}
			if s.Snapshot().Len() != 2 {
				t.Errorf("Len() = %d, want the previous quote kept", s.Snapshot().Len())
			}
		})
	}
}

func TestHandleQuoteSnapshotUpload_TooLarge(t *testing.T) {
	cfg := newTestConfig(t)
	s := newTestSession(t, cfg)

	body := `{"NombreEmpresa": "` + strings.Repeat("x", maxSnapshotBytes) + `", "Productos": []}`
	req := jsonRequest(http.MethodPost, "/api/quote/snapshot", body)
	rec := httptest.NewRecorder()
	if err := HandleQuoteSnapshotUpload(s, cfg)(newTestRequestEvent(nil, req, rec)); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestHandleQuoteSnapshotDownload(t *testing.T) {
	cfg := newTestConfig(t)
	s := newTestSession(t, cfg)
	addTestItems(t, s)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/quote/snapshot", nil)
	if err := HandleQuoteSnapshotDownload(s)(newTestRequestEvent(nil, req, rec)); err != nil {
		t.Fatal(err)
	}

	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, ".json") {
		t.Errorf("Content-Disposition = %q", got)
	}
	q, err := services.DecodeSnapshot(rec.Body.Bytes(), cfg.PricingEngine())
	if err != nil {
		t.Fatalf("downloaded snapshot does not decode: %v", err)
	}
	if !q.Total().Equal(s.Total()) {
		t.Errorf("Total() = %s, want %s", q.Total(), s.Total())
	}
}

func TestHandleQuoteSaveAndOpen(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Storage.SnapshotDir = filepath.Join(t.TempDir(), "nested", "quotes")
	s := newTestSession(t, cfg)
	addTestItems(t, s)

	req := formRequest(http.MethodPost, "/api/quote/save", url.Values{"name": {"march"}})
	rec := httptest.NewRecorder()
	if err := HandleQuoteSave(s, cfg)(newTestRequestEvent(nil, req, rec)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody[map[string]string](t, rec.Body)
	if body["file"] != "march.json" {
		t.Errorf("file = %q, want march.json", body["file"])
	}
	if _, err := os.Stat(filepath.Join(cfg.Storage.SnapshotDir, "march.json")); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}

	other := newTestSession(t, cfg)
	req = formRequest(http.MethodPost, "/api/quote/open", url.Values{"name": {"march.json"}})
	rec = httptest.NewRecorder()
	if err := HandleQuoteOpen(other, cfg)(newTestRequestEvent(nil, req, rec)); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("open status = %d", rec.Code)
	}
	if !other.Total().Equal(s.Total()) {
		t.Errorf("opened total = %s, want %s", other.Total(), s.Total())
	}
}

func TestHandleQuoteOpen_Errors(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		wantStatus int
	}{
		{"no name", "", http.StatusBadRequest},
		{"path traversal", "../secret.json", http.StatusBadRequest},
		{"missing file", "nope.json", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t)
			s := newTestSession(t, cfg)

			req := formRequest(http.MethodPost, "/api/quote/open", url.Values{"name": {tt.file}})
			rec := httptest.NewRecorder()
			if err := HandleQuoteOpen(s, cfg)(newTestRequestEvent(nil, req, rec)); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestSnapshotPath(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"quote", filepath.Join("dir", "quote.json"), false},
		{"quote.json", filepath.Join("dir", "quote.json"), false},
		{"quote.JSON", filepath.Join("dir", "quote.JSON"), false},
		{"a/b.json", "", true},
		{`a\b.json`, "", true},
		{"..", "", true},
		{".", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := snapshotPath("dir", tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("snapshotPath(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("snapshotPath(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
