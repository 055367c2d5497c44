package collections_test

import (
	"testing"

	"quotebuilder/collections"
	"quotebuilder/testhelpers"
)

func TestMigrateQuoteSummaries_FillsMissingColumns(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := testhelpers.CreateTestQuoteRecord(t, app, "Imported", `{
  "NombreEmpresa": "Acme",
  "Productos": [
    {"Nombre": "a", "Descripcion": "b", "PrecioNeto": 1, "PorcentajeExtra": 0},
    {"Nombre": "c", "Descripcion": "d", "PrecioNeto": 2, "PorcentajeExtra": 0}
  ]
}`)

	if err := collections.MigrateQuoteSummaries(app); err != nil {
		t.Fatalf("MigrateQuoteSummaries() error: %v", err)
	}

	got, err := app.FindRecordById("quotes", rec.Id)
	if err != nil {
		t.Fatal(err)
	}
	if got.GetString("company_name") != "Acme" {
		t.Errorf("company_name = %q, want %q", got.GetString("company_name"), "Acme")
	}
	if got.GetInt("item_count") != 2 {
		t.Errorf("item_count = %d, want 2", got.GetInt("item_count"))
	}
}

func TestMigrateQuoteSummaries_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := testhelpers.CreateTestQuoteRecord(t, app, "Imported",
		`{"NombreEmpresa": "Acme", "Productos": [{"Nombre": "a", "Descripcion": "b", "PrecioNeto": 1, "PorcentajeExtra": 0}]}`)

	for i := 0; i < 2; i++ {
		if err := collections.MigrateQuoteSummaries(app); err != nil {
			t.Fatalf("run %d: MigrateQuoteSummaries() error: %v", i+1, err)
		}
	}

	got, _ := app.FindRecordById("quotes", rec.Id)
	if got.GetInt("item_count") != 1 {
		t.Errorf("item_count = %d, want 1", got.GetInt("item_count"))
	}
}

func TestMigrateQuoteSummaries_EmptySnapshotUntouched(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := testhelpers.CreateTestQuoteRecord(t, app, "Blank", `{"Productos": []}`)
	before := rec.GetString("updated")

	if err := collections.MigrateQuoteSummaries(app); err != nil {
		t.Fatalf("MigrateQuoteSummaries() error: %v", err)
	}

	got, _ := app.FindRecordById("quotes", rec.Id)
	if got.GetString("updated") != before {
		t.Error("record with nothing to fill was saved again")
	}
}
