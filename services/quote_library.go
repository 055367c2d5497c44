package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
	"github.com/shopspring/decimal"
)

// QuotesCollection stores saved quotes. The snapshot field holds the same
// JSON document written to quote files.
const QuotesCollection = "quotes"

// StoredQuote is a library entry. Total is recomputed from the snapshot with
// the current pricing.
type StoredQuote struct {
	ID          string
	Title       string
	CompanyName string
	ItemCount   int
	Total       decimal.Decimal
	Updated     time.Time
}

// StoreQuote saves q in the library under title and returns the new record ID.
func StoreQuote(app *pocketbase.PocketBase, title string, q *Quote) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", &ValidationError{Fields: map[string]string{"title": "title is required"}}
	}

	data, err := EncodeSnapshot(q)
	if err != nil {
		return "", err
	}

	col, err := app.FindCollectionByNameOrId(QuotesCollection)
	if err != nil {
		return "", fmt.Errorf("find %s collection: %w", QuotesCollection, err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("company_name", q.Company.Name)
	record.Set("item_count", q.Len())
	record.Set("snapshot", types.JSONRaw(data))

	if err := app.Save(record); err != nil {
		return "", fmt.Errorf("save quote %q: %w", title, err)
	}
	return record.Id, nil
}

// ListStoredQuotes returns every saved quote, most recently updated first.
// Entries whose snapshot no longer decodes are skipped and logged.
func ListStoredQuotes(app *pocketbase.PocketBase, p PricingEngine) ([]StoredQuote, error) {
	records, err := app.FindRecordsByFilter(QuotesCollection, "id != ''", "-updated", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	out := make([]StoredQuote, 0, len(records))
	for _, record := range records {
		q, err := decodeStoredQuote(record, p)
		if err != nil {
			log.Printf("quote_library: ListStoredQuotes: skipping %s: %v", record.Id, err)
			continue
		}
		out = append(out, StoredQuote{
			ID:          record.Id,
			Title:       record.GetString("title"),
			CompanyName: record.GetString("company_name"),
			ItemCount:   q.Len(),
			Total:       q.Total(),
			Updated:     record.GetDateTime("updated").Time(),
		})
	}
	return out, nil
}

// OpenStoredQuote decodes a saved quote with p.
func OpenStoredQuote(app *pocketbase.PocketBase, id string, p PricingEngine) (*Quote, error) {
	record, err := app.FindRecordById(QuotesCollection, id)
	if err != nil {
		return nil, fmt.Errorf("quote %s not found: %w", id, err)
	}
	return decodeStoredQuote(record, p)
}

// DeleteStoredQuote removes a saved quote.
func DeleteStoredQuote(app *pocketbase.PocketBase, id string) error {
	record, err := app.FindRecordById(QuotesCollection, id)
	if err != nil {
		return fmt.Errorf("quote %s not found: %w", id, err)
	}
	if err := app.Delete(record); err != nil {
		return fmt.Errorf("delete quote %s: %w", id, err)
	}
	return nil
}

func decodeStoredQuote(record *core.Record, p PricingEngine) (*Quote, error) {
	var raw json.RawMessage
	if err := record.UnmarshalJSONField("snapshot", &raw); err != nil {
		return nil, &FormatError{Reason: "stored snapshot", Err: err}
	}
	return DecodeSnapshot(raw, p)
}
