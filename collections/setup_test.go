package collections_test

import (
	"testing"

	"quotebuilder/collections"
	"quotebuilder/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

func TestSetup_QuotesCollectionExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("collection %q not found after Setup(): %v", "quotes", err)
	}
	if col.Name != "quotes" {
		t.Errorf("expected collection name %q, got %q", "quotes", col.Name)
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	col, _ := app.FindCollectionByNameOrId("quotes")
	id := col.Id

	// Run Setup() again
	collections.Setup(app)

	col, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		t.Fatalf("collection missing after second Setup(): %v", err)
	}
	if col.Id != id {
		t.Errorf("collection id changed after second Setup(): %s -> %s", id, col.Id)
	}
}

func TestSetup_QuotesFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("quotes")

	for _, f := range []string{"title", "company_name", "item_count", "snapshot", "created", "updated"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("quotes: missing field %q", f)
		}
	}

	if _, ok := col.Fields.GetByName("snapshot").(*core.JSONField); !ok {
		t.Error("quotes.snapshot is not a JSONField")
	}
	if tf, ok := col.Fields.GetByName("title").(*core.TextField); !ok || !tf.Required {
		t.Error("quotes.title should be a required TextField")
	}
	// Totals are derived on read and never stored.
	if col.Fields.GetByName("total") != nil {
		t.Error("quotes should not store a total")
	}
}
