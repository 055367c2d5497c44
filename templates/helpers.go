// Package templates renders the HTML views of a quote as templ components.
package templates

import (
	"fmt"

	"quotebuilder/services"
)

func previewColumns(data services.ExportData) []services.ExportColumn {
	if len(data.Columns) == 0 {
		return services.QuoteColumns
	}
	return data.Columns
}

func cellAlign(columns []services.ExportColumn, i int) services.ColumnAlign {
	if i < len(columns) {
		return columns[i].Align
	}
	return services.AlignLeft
}

func removeURL(i int) string {
	return fmt.Sprintf("/api/quote/items/%d?confirm=true", i)
}

func removePrompt(r services.ExportRow) string {
	if len(r.Cells) == 0 {
		return "Remove this product?"
	}
	return "Remove " + r.Cells[0].Text + "?"
}

func pageTitle(data services.ExportData) string {
	if data.Header.CompanyName == "" {
		return data.Title
	}
	return data.Title + " - " + data.Header.CompanyName
}
