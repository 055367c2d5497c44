package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/config"
	"quotebuilder/services"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// exportFilename is the download name for ext. A "name" query parameter
// overrides the dated default.
func exportFilename(e *core.RequestEvent, ext string) string {
	if name := strings.TrimSpace(e.Request.URL.Query().Get("name")); name != "" {
		name = sanitizeFilename(strings.TrimSuffix(name, ext))
		if name != "" {
			return name + ext
		}
	}
	return services.DefaultFileName(time.Now(), ext)
}

// exportQuote snapshots the session and lays it out. Logo problems are
// surfaced as a warning toast; the download still happens.
func exportQuote(e *core.RequestEvent, s *services.Session, cfg *config.Config) (services.ExportData, error) {
	data, err := s.Export(services.ExportOptions{Money: cfg.MoneyFormat()})
	if err != nil {
		return data, err
	}
	for _, w := range data.Warnings {
		SetToast(e, "warning", w.Error())
	}
	return data, nil
}

// HandleQuoteExportExcel returns a handler that generates and downloads an Excel file for the active quote.
func HandleQuoteExportExcel(s *services.Session, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := exportQuote(e, s, cfg)
		if err != nil {
			return respondError(e, err)
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := exportFilename(e, ".xlsx")

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleQuoteExportPDF returns a handler that generates and downloads a PDF file for the active quote.
func HandleQuoteExportPDF(s *services.Session, cfg *config.Config) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := exportQuote(e, s, cfg)
		if err != nil {
			return respondError(e, err)
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := exportFilename(e, ".pdf")

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
