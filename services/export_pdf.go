package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfHeaderBg   = &props.Color{Red: 70, Green: 70, Blue: 70}
	pdfHeaderText = &props.Color{Red: 255, Green: 255, Blue: 255}
	pdfRowBorder  = &props.Color{Red: 204, Green: 204, Blue: 204}
)

// GeneratePDF renders data as a paginated Letter-size report and returns the
// PDF bytes. The company block repeats at the top of every page.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.Letter).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithDefaultFont(&props.Font{Family: fontfamily.Arial, Size: 10}).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterHeader(quoteHeaderRows(data)...); err != nil {
		return nil, fmt.Errorf("register PDF header: %w", err)
	}

	columns := data.Columns
	if len(columns) == 0 {
		columns = QuoteColumns
	}
	sizes := gridSizes(columns)

	addQuoteTableHeader(m, columns, sizes)
	for _, r := range data.Rows {
		addQuoteTableRow(m, columns, sizes, r)
	}
	addQuoteTotal(m, data)
	addQuoteFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// quoteHeaderRows builds the logo on the left and the company block on the right.
func quoteHeaderRows(data ExportData) []core.Row {
	h := data.Header

	logoCol := col.New(5)
	if h.Logo != nil {
		logoCol = col.New(5).Add(image.NewFromBytes(h.Logo.Data, extension.Png, props.Rect{
			Percent: 100,
		}))
	}

	right := props.Text{Size: 10, Align: align.Right}
	company := props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right}

	companyCol := col.New(7).Add(
		text.New(h.CompanyName, company),
		text.New(h.FiscalDetails, withTop(right, 7)),
		text.New(h.Contact, withTop(right, 12)),
	)

	return []core.Row{
		row.New(26).Add(logoCol, companyCol),
		row.New(8),
	}
}

func addQuoteTableHeader(m core.Maroto, columns []ExportColumn, sizes []int) {
	cell := &props.Cell{BackgroundColor: pdfHeaderBg}

	cols := make([]core.Col, 0, len(columns))
	for i, c := range columns {
		style := props.Text{
			Size:  9,
			Style: fontstyle.Bold,
			Color: pdfHeaderText,
			Align: pdfAlign(c.Align),
			Top:   2,
			Left:  1.5,
			Right: 1.5,
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(c.Title, style)).WithStyle(cell))
	}
	m.AddRows(row.New(8).Add(cols...))
}

func addQuoteTableRow(m core.Maroto, columns []ExportColumn, sizes []int, r ExportRow) {
	cell := &props.Cell{
		BorderType:      border.Bottom,
		BorderColor:     pdfRowBorder,
		BorderThickness: 0.3,
	}

	cols := make([]core.Col, 0, len(columns))
	for i, c := range columns {
		value := ""
		if i < len(r.Cells) {
			value = r.Cells[i].Text
		}
		style := props.Text{
			Size:  9,
			Align: pdfAlign(c.Align),
			Top:   2,
			Left:  1.5,
			Right: 1.5,
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(value, style)).WithStyle(cell))
	}
	m.AddRows(row.New(8).Add(cols...))
}

func addQuoteTotal(m core.Maroto, data ExportData) {
	m.AddRows(row.New(4))
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New(data.TotalText, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)
}

// addQuoteFooter adds the generation date below the total.
func addQuoteFooter(m core.Maroto, data ExportData) {
	if data.GeneratedOn == "" {
		return
	}
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New("Generated on "+data.GeneratedOn, props.Text{
					Size:  7,
					Style: fontstyle.Italic,
					Color: &props.Color{Red: 120, Green: 120, Blue: 120},
				}),
			),
		),
	)
}

// gridSizes maps relative column widths onto maroto's 12-unit grid.
func gridSizes(columns []ExportColumn) []int {
	const grid = 12

	totalWidth := 0
	for _, c := range columns {
		totalWidth += c.Width
	}

	sizes := make([]int, len(columns))
	if totalWidth == 0 {
		for i := range sizes {
			sizes[i] = 1
		}
		return sizes
	}

	used := 0
	widest := 0
	for i, c := range columns {
		sizes[i] = c.Width * grid / totalWidth
		if sizes[i] < 1 {
			sizes[i] = 1
		}
		used += sizes[i]
		if c.Width > columns[widest].Width {
			widest = i
		}
	}
	// Give any rounding remainder to the widest column.
	if used < grid {
		sizes[widest] += grid - used
	}
	return sizes
}

func pdfAlign(a ColumnAlign) align.Type {
	if a == AlignRight {
		return align.Right
	}
	return align.Left
}

func withTop(t props.Text, top float64) props.Text {
	t.Top = top
	return t
}
