package handlers

import (
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/config"
	"quotebuilder/services"
)

// StoredQuoteView is one library entry in the list response.
type StoredQuoteView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	ItemCount   int    `json:"item_count"`
	Total       string `json:"total"`
	TotalText   string `json:"total_text"`
	Updated     string `json:"updated"`
}

// HandleLibraryList returns every saved quote with its recomputed total.
func HandleLibraryList(app *pocketbase.PocketBase, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotes, err := services.ListStoredQuotes(app, cfg.PricingEngine())
		if err != nil {
			return respondError(e, err)
		}

		money := cfg.MoneyFormat()
		views := make([]StoredQuoteView, 0, len(quotes))
		for _, q := range quotes {
			views = append(views, StoredQuoteView{
				ID:          q.ID,
				Title:       q.Title,
				CompanyName: q.CompanyName,
				ItemCount:   q.ItemCount,
				Total:       q.Total.StringFixed(2),
				TotalText:   "TOTAL: " + money.Format(q.Total),
				Updated:     q.Updated.Format("02 Jan 2006 15:04"),
			})
		}
		return e.JSON(http.StatusOK, views)
	}
}

// HandleLibraryStore saves the active quote under the "title" form value.
func HandleLibraryStore(app *pocketbase.PocketBase, s *services.Session) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		title := strings.TrimSpace(e.Request.FormValue("title"))

		id, err := services.StoreQuote(app, title, s.Snapshot())
		if err != nil {
			return respondError(e, err)
		}

		SetToast(e, "success", "Quote saved to library")
		return e.JSON(http.StatusCreated, map[string]string{"id": id})
	}
}

// HandleLibraryOpen makes a saved quote the active one.
func HandleLibraryOpen(app *pocketbase.PocketBase, s *services.Session, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing quote ID")
		}

		q, err := services.OpenStoredQuote(app, id, s.Pricing())
		if err != nil {
			return respondError(e, err)
		}
		s.Replace(q)

		SetToast(e, "success", "Quote opened")
		return respondQuote(e, s, cfg, http.StatusOK)
	}
}

// HandleLibraryDelete removes a saved quote.
func HandleLibraryDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return ErrorToast(e, http.StatusBadRequest, "Missing quote ID")
		}

		if err := services.DeleteStoredQuote(app, id); err != nil {
			return respondError(e, err)
		}

		SetToast(e, "success", "Quote deleted")
		return e.NoContent(http.StatusNoContent)
	}
}
