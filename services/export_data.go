package services

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// ColumnAlign is the horizontal alignment of a column.
type ColumnAlign int

const (
	AlignLeft ColumnAlign = iota
	AlignRight
)

// ExportColumn describes one body column. Width is relative to the others.
type ExportColumn struct {
	Title   string
	Align   ColumnAlign
	Numeric bool
	Width   int
}

// QuoteColumns is the fixed column order shared by every output format.
var QuoteColumns = []ExportColumn{
	{Title: "Name", Align: AlignLeft, Width: 2},
	{Title: "Description", Align: AlignLeft, Width: 4},
	{Title: "Net Price", Align: AlignRight, Numeric: true, Width: 2},
	{Title: "Taxed Price", Align: AlignRight, Numeric: true, Width: 2},
	{Title: "Final Price", Align: AlignRight, Numeric: true, Width: 2},
}

// ExportCell is a rendered value. Amount is set for numeric cells and is
// already rounded to currency precision.
type ExportCell struct {
	Text   string
	Amount decimal.Decimal
}

// ExportRow is one body row, one cell per QuoteColumns entry.
type ExportRow struct {
	Cells []ExportCell
}

// ExportHeader is the company block above the table.
type ExportHeader struct {
	CompanyName   string
	FiscalDetails string
	Contact       string
	LogoPath      string
	Logo          *Logo
}

// ExportData holds everything a format adapter needs to draw a quote.
type ExportData struct {
	Title       string
	Header      ExportHeader
	Columns     []ExportColumn
	Rows        []ExportRow
	Total       decimal.Decimal
	TotalText   string
	GeneratedOn string
	Money       MoneyFormat
	Warnings    []error
}

// ExportOptions controls presentation details that are not part of the quote.
type ExportOptions struct {
	Money MoneyFormat
	Now   time.Time
}

func (o ExportOptions) withDefaults() ExportOptions {
	if o.Money == (MoneyFormat{}) {
		o.Money = DefaultMoneyFormat
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// BuildExportData lays out q for rendering. It reads q and never changes it.
func BuildExportData(q *Quote, opts ExportOptions) ExportData {
	opts = opts.withDefaults()
	money := opts.Money

	items := q.Items()
	rows := make([]ExportRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, ExportRow{Cells: []ExportCell{
			{Text: item.Name},
			{Text: item.Description},
			moneyCell(money, item.NetPrice),
			moneyCell(money, item.TaxedPrice),
			moneyCell(money, item.FinalPrice),
		}})
	}

	columns := make([]ExportColumn, len(QuoteColumns))
	copy(columns, QuoteColumns)

	total := q.Total().Round(2)
	return ExportData{
		Title: "Quote",
		Header: ExportHeader{
			CompanyName:   q.Company.Name,
			FiscalDetails: q.Company.FiscalDetails,
			Contact:       q.Company.Contact,
			LogoPath:      q.LogoPath,
		},
		Columns:     columns,
		Rows:        rows,
		Total:       total,
		TotalText:   "TOTAL: " + money.Format(total),
		GeneratedOn: opts.Now.Format("02 Jan 2006"),
		Money:       money,
	}
}

// PrepareExport builds the layout and loads the logo. A logo that cannot be
// read is recorded in Warnings and left out.
func PrepareExport(q *Quote, opts ExportOptions) ExportData {
	data := BuildExportData(q, opts)

	logo, err := LoadLogo(data.Header.LogoPath)
	if err != nil {
		log.Printf("export: %v", err)
		data.Warnings = append(data.Warnings, err)
	}
	data.Header.Logo = logo

	return data
}

func moneyCell(f MoneyFormat, amount decimal.Decimal) ExportCell {
	rounded := amount.Round(2)
	return ExportCell{Text: f.Format(rounded), Amount: rounded}
}
