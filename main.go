package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/collections"
	"quotebuilder/commands"
	"quotebuilder/config"
	"quotebuilder/handlers"
	"quotebuilder/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	app := pocketbase.New()
	session := services.NewSession(cfg.PricingEngine(), cfg.SessionDefaults())

	app.RootCmd.AddCommand(commands.All(cfg)...)

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateQuoteSummaries(app); err != nil {
			log.Printf("Warning: quote summary migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Editor page ──────────────────────────────────────────
		se.Router.GET("/quote", handlers.HandleQuotePage(session, cfg))

		// ── Active quote ─────────────────────────────────────────
		se.Router.GET("/api/quote", handlers.HandleQuoteView(session, cfg))
		se.Router.GET("/api/quote/total", handlers.HandleQuoteTotal(session, cfg))
		se.Router.PUT("/api/quote/company", handlers.HandleQuoteSetCompany(session, cfg))
		se.Router.PUT("/api/quote/logo", handlers.HandleQuoteSetLogo(session, cfg))
		se.Router.GET("/api/quote/logo", handlers.HandleQuoteLogo(session))
		se.Router.POST("/api/quote/items", handlers.HandleQuoteAddItem(session, cfg))
		se.Router.DELETE("/api/quote/items/{index}", handlers.HandleQuoteRemoveItem(session, cfg))
		se.Router.POST("/api/quote/new", handlers.HandleQuoteNew(session, cfg))

		// ── Snapshot files ───────────────────────────────────────
		se.Router.GET("/api/quote/snapshot", handlers.HandleQuoteSnapshotDownload(session))
		se.Router.POST("/api/quote/snapshot", handlers.HandleQuoteSnapshotUpload(session, cfg))
		se.Router.POST("/api/quote/save", handlers.HandleQuoteSave(session, cfg))
		se.Router.POST("/api/quote/open", handlers.HandleQuoteOpen(session, cfg))

		// ── Export ───────────────────────────────────────────────
		se.Router.GET("/api/quote/export/excel", handlers.HandleQuoteExportExcel(session, cfg))
		se.Router.GET("/api/quote/export/pdf", handlers.HandleQuoteExportPDF(session, cfg))

		// ── Quote library ────────────────────────────────────────
		se.Router.GET("/api/quotes", handlers.HandleLibraryList(app, cfg))
		se.Router.POST("/api/quotes", handlers.HandleLibraryStore(app, session))
		se.Router.POST("/api/quotes/{id}/open", handlers.HandleLibraryOpen(app, session, cfg))
		se.Router.DELETE("/api/quotes/{id}", handlers.HandleLibraryDelete(app))

		// Redirect home to the editor
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/quote")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
