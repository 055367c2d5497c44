package collections

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// ── Definition structs ───────────────────────────────────────────────────

type productDef struct {
	Nombre          string      `json:"Nombre"`
	Descripcion     string      `json:"Descripcion"`
	PrecioNeto      json.Number `json:"PrecioNeto"`
	PorcentajeExtra json.Number `json:"PorcentajeExtra"`
}

type quoteDef struct {
	title         string
	NombreEmpresa string       `json:"NombreEmpresa"`
	DatosFiscales string       `json:"DatosFiscales"`
	Contacto      string       `json:"Contacto"`
	LogoPath      string       `json:"LogoPath"`
	Productos     []productDef `json:"Productos"`
}

var seedQuotes = []quoteDef{
	{
		title:         "Sample: office furniture",
		NombreEmpresa: "Muebles del Norte SA de CV",
		DatosFiscales: "RFC MNO150301AB2, Av. Constitución 100, Monterrey NL",
		Contacto:      "ventas@mueblesdelnorte.mx, +52 81 5555 0100",
		Productos: []productDef{
			{"Escritorio ejecutivo", "Escritorio de roble 160x80 cm", "4500", "12"},
			{"Silla ergonómica", "Silla con soporte lumbar ajustable", "2890.50", "10"},
			{"Archivero", "Archivero metálico de 3 cajones", "1750", "0"},
		},
	},
}

// Seed inserts a sample quote so the library is not empty on first start.
// It is safe to call on every startup because it returns early if any quote
// records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if quotes already exist ────────────────────
	quotesCol, err := app.FindCollectionByNameOrId("quotes")
	if err != nil {
		return fmt.Errorf("seed: could not find quotes collection: %w", err)
	}
	existing, err := app.FindAllRecords(quotesCol)
	if err != nil {
		return fmt.Errorf("seed: could not query quotes: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: quotes collection is empty – inserting seed data …")

	for _, q := range seedQuotes {
		snapshot, err := json.MarshalIndent(q, "", "  ")
		if err != nil {
			return fmt.Errorf("seed: encode %q: %w", q.title, err)
		}

		r := core.NewRecord(quotesCol)
		r.Set("title", q.title)
		r.Set("company_name", q.NombreEmpresa)
		r.Set("item_count", len(q.Productos))
		r.Set("snapshot", types.JSONRaw(snapshot))
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save %q: %w", q.title, err)
		}
	}

	log.Printf("seed: inserted %d quote(s)", len(seedQuotes))
	return nil
}
