package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/config"
	"quotebuilder/services"
	"quotebuilder/templates"
)

// maxSnapshotBytes caps uploaded snapshot bodies.
const maxSnapshotBytes = 5 << 20

// QuoteItemView is one product in the JSON view. Prices are rounded for
// display; ExtraPercent is shown as entered.
type QuoteItemView struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	NetPrice     string `json:"net_price"`
	ExtraPercent string `json:"extra_percent"`
	TaxedPrice   string `json:"taxed_price"`
	FinalPrice   string `json:"final_price"`
}

// QuoteView is the JSON shape of the active quote.
type QuoteView struct {
	Company   services.CompanyInfo `json:"company"`
	LogoPath  string               `json:"logo_path"`
	Items     []QuoteItemView      `json:"items"`
	Total     string               `json:"total"`
	TotalText string               `json:"total_text"`
	Warnings  []string             `json:"warnings,omitempty"`
}

func newQuoteView(q *services.Quote, money services.MoneyFormat, warnings []error) QuoteView {
	items := q.Items()
	view := QuoteView{
		Company:  q.Company,
		LogoPath: q.LogoPath,
		Items:    make([]QuoteItemView, 0, len(items)),
	}
	for i, item := range items {
		view.Items = append(view.Items, QuoteItemView{
			Index:        i,
			Name:         item.Name,
			Description:  item.Description,
			NetPrice:     item.NetPrice.StringFixed(2),
			ExtraPercent: item.ExtraPercent.String(),
			TaxedPrice:   item.TaxedPrice.StringFixed(2),
			FinalPrice:   item.FinalPrice.StringFixed(2),
		})
	}
	total := q.Total()
	view.Total = total.StringFixed(2)
	view.TotalText = "TOTAL: " + money.Format(total)
	for _, w := range warnings {
		view.Warnings = append(view.Warnings, w.Error())
	}
	return view
}

// respondQuote writes the current quote: the preview fragment for HTMX
// requests, JSON otherwise.
func respondQuote(e *core.RequestEvent, s *services.Session, cfg *config.Config, status int, warnings ...error) error {
	q := s.Snapshot()

	if e.Request.Header.Get("HX-Request") == "true" {
		data := services.PrepareExport(q, services.ExportOptions{Money: cfg.MoneyFormat()})
		data.Warnings = append(data.Warnings, warnings...)
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		e.Response.WriteHeader(status)
		return templates.QuotePreview(data).Render(e.Request.Context(), e.Response)
	}

	return e.JSON(status, newQuoteView(q, cfg.MoneyFormat(), warnings))
}

// HandleQuotePage renders the full quote editor page.
func HandleQuotePage(s *services.Session, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data := services.PrepareExport(s.Snapshot(), services.ExportOptions{Money: cfg.MoneyFormat()})

		component := templates.QuotePage(data)
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.QuotePreview(data)
		}
		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleQuoteView returns the active quote.
func HandleQuoteView(s *services.Session, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return respondQuote(e, s, cfg, http.StatusOK)
	}
}

// HandleQuoteTotal returns the running total.
func HandleQuoteTotal(s *services.Session, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		total := s.Total()
		return e.JSON(http.StatusOK, map[string]string{
			"total":      total.StringFixed(2),
			"total_text": "TOTAL: " + cfg.MoneyFormat().Format(total),
		})
	}
}

// HandleQuoteSetCompany replaces the company header fields.
func HandleQuoteSetCompany(s *services.Session, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var company services.CompanyInfo
		if err := readInput(e, &company, map[string]*string{
			"company_name":   &company.Name,
			"fiscal_details": &company.FiscalDetails,
			"contact":        &company.Contact,
		}); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		s.SetCompany(company)
		SetToast(e, "success", "Company details updated")
		return respondQuote(e, s, cfg, http.StatusOK)
	}
}

// HandleQuoteSetLogo stores the logo path. An unreadable image is kept but
// reported as a warning.
func HandleQuoteSetLogo(s *services.Session, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in struct {
			LogoPath string `json:"logo_path"`
		}
		if err := readInput(e, &in, map[string]*string{"logo_path": &in.LogoPath}); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		if err := s.SetLogo(strings.TrimSpace(in.LogoPath)); err != nil {
			SetToast(e, "warning", err.Error())
			return respondQuote(e, s, cfg, http.StatusOK, err)
		}
		SetToast(e, "success", "Logo updated")
		return respondQuote(e, s, cfg, http.StatusOK)
	}
}

// HandleQuoteLogo serves the scaled logo image.
func HandleQuoteLogo(s *services.Session) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		logo, err := services.LoadLogo(s.Snapshot().LogoPath)
		if err != nil || logo == nil {
			return e.String(http.StatusNotFound, "No logo")
		}
		e.Response.Header().Set("Content-Type", "image/png")
		e.Response.Header().Set("Cache-Control", "no-store")
		_, err = e.Response.Write(logo.Data)
		return err
	}
}

// HandleQuoteAddItem validates and appends a product.
func HandleQuoteAddItem(s *services.Session, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var in services.ItemInput
		if err := readInput(e, &in, map[string]*string{
			"name":          &in.Name,
			"description":   &in.Description,
			"net_price":     &in.NetPrice,
			"extra_percent": &in.ExtraPercent,
		}); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		if _, err := s.AddItem(in); err != nil {
			return respondError(e, err)
		}
		SetToast(e, "success", "Product added")
		return respondQuote(e, s, cfg, http.StatusCreated)
	}
}

// HandleQuoteRemoveItem removes the product at {index}. The request must
// carry confirm=true; without it nothing is removed and 409 is returned.
func HandleQuoteRemoveItem(s *services.Session, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		index := -1
		if raw := e.Request.PathValue("index"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return respondError(e, services.ErrNoSelection)
			}
			index = n
		}
		confirmed, _ := strconv.ParseBool(e.Request.URL.Query().Get("confirm"))

		if _, err := s.RemoveItem(index, confirmed); err != nil {
			return respondError(e, err)
		}
		SetToast(e, "success", "Product removed")
		return respondQuote(e, s, cfg, http.StatusOK)
	}
}

// HandleQuoteNew discards the active quote.
func HandleQuoteNew(s *services.Session, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s.Reset()
		SetToast(e, "info", "Started a new quote")
		return respondQuote(e, s, cfg, http.StatusOK)
	}
}

// readInput fills dst from a JSON body, or else copies form values into the
// given string fields.
func readInput(e *core.RequestEvent, dst any, fields map[string]*string) error {
	if isJSONRequest(e.Request) {
		if err := json.NewDecoder(e.Request.Body).Decode(dst); err != nil {
			log.Printf("quote: readInput: %v", err)
			return fmt.Errorf("decode JSON body: %w", err)
		}
		return nil
	}

	if err := e.Request.ParseForm(); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	for name, field := range fields {
		*field = e.Request.FormValue(name)
	}
	return nil
}

func isJSONRequest(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}
