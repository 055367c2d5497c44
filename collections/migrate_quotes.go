package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// quoteSummary is the part of a stored snapshot the list columns mirror.
type quoteSummary struct {
	NombreEmpresa string            `json:"NombreEmpresa"`
	Productos     []json.RawMessage `json:"Productos"`
}

// MigrateQuoteSummaries fills company_name and item_count from the stored
// snapshot for records imported without them. Safe to call on every startup
// -- returns early if nothing to migrate.
func MigrateQuoteSummaries(app *pocketbase.PocketBase) error {
	quotesCol, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		return fmt.Errorf("migrate: could not find quotes collection: %w", err)
	}

	stale, err := app.FindRecordsByFilter(
		quotesCol,
		"company_name = '' && item_count = 0",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query quotes: %w", err)
	}

	updated := 0
	for _, record := range stale {
		var summary quoteSummary
		if err := record.UnmarshalJSONField("snapshot", &summary); err != nil {
			log.Printf("migrate: quote %s has an unreadable snapshot: %v\n", record.Id, err)
			continue
		}
		if summary.NombreEmpresa == "" && len(summary.Productos) == 0 {
			continue
		}

		record.Set("company_name", summary.NombreEmpresa)
		record.Set("item_count", len(summary.Productos))
		if err := app.Save(record); err != nil {
			log.Printf("migrate: failed to update quote %s: %v\n", record.Id, err)
			continue
		}
		updated++
	}

	if updated > 0 {
		log.Printf("migrate: filled summaries for %d quote(s)\n", updated)
	}
	return nil
}
