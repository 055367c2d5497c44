package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/config"
	"quotebuilder/services"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	if app != nil {
		e.App = app
	}
	e.Request = req
	e.Response = rec
	return e
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Pricing:  config.PricingConfig{TaxRate: services.DefaultTaxRate, CurrencySymbol: "$"},
		Storage:  config.StorageConfig{SnapshotDir: t.TempDir()},
		Defaults: config.DefaultsConfig{},
	}
}

func newTestSession(t *testing.T, cfg *config.Config) *services.Session {
	t.Helper()
	return services.NewSession(cfg.PricingEngine(), cfg.SessionDefaults())
}

func addTestItems(t *testing.T, s *services.Session) {
	t.Helper()
	for _, in := range []services.ItemInput{
		{Name: "Widget", Description: "Steel widget", NetPrice: "100", ExtraPercent: "10"},
		{Name: "Gadget", Description: "Plastic gadget", NetPrice: "50", ExtraPercent: "0"},
	} {
		if _, err := s.AddItem(in); err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}
	}
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody[T any](t *testing.T, r io.Reader) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return v
}
