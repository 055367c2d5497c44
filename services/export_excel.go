package services

import (
	"bytes"
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"
)

// Sheet layout: company block in C2:E4, column headers on row 7, data from row 8.
const (
	excelSheetName    = "Quote"
	excelHeaderRow    = 7
	excelLogoScale    = 0.5
	excelPointsPerPix = 0.75
)

var excelColumns = []string{"A", "B", "C", "D", "E"}

// GenerateExcel renders data as an xlsx workbook and returns its bytes.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := excelSheetName
	columns := data.Columns
	if len(columns) == 0 {
		columns = QuoteColumns
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	widths := []float64{22, 40, 16, 18, 18}
	for i, col := range excelColumns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	styles, err := newExcelStyles(f, data.Money)
	if err != nil {
		return nil, err
	}

	// ── Logo ────────────────────────────────────────────────────────────

	if logo := data.Header.Logo; logo != nil {
		err := f.AddPictureFromBytes(sheet, "A1", &excelize.Picture{
			Extension: logo.Extension(),
			File:      logo.Data,
			Format: &excelize.GraphicOptions{
				AltText:         "Logo",
				ScaleX:          excelLogoScale,
				ScaleY:          excelLogoScale,
				LockAspectRatio: true,
			},
			InsertType: excelize.PictureInsertTypePlaceOverCells,
		})
		if err != nil {
			// The workbook is still useful without the logo.
			log.Printf("export_excel: could not add logo: %v", err)
		} else {
			height := float64(logo.Height) * excelLogoScale * excelPointsPerPix
			if err := f.SetRowHeight(sheet, 1, height); err != nil {
				return nil, fmt.Errorf("set logo row height: %w", err)
			}
		}
	}

	// ── Company block (rows 2-4) ────────────────────────────────────────

	companyLines := []struct {
		value string
		style int
	}{
		{data.Header.CompanyName, styles.company},
		{data.Header.FiscalDetails, styles.companyDetail},
		{data.Header.Contact, styles.companyDetail},
	}
	for i, line := range companyLines {
		row := i + 2
		left, right := fmt.Sprintf("C%d", row), fmt.Sprintf("E%d", row)
		if err := f.MergeCell(sheet, left, right); err != nil {
			return nil, fmt.Errorf("merge company row %d: %w", row, err)
		}
		f.SetCellStr(sheet, left, line.value)
		f.SetCellStyle(sheet, left, right, line.style)
	}

	// ── Column headers ──────────────────────────────────────────────────

	for i, c := range columns {
		f.SetCellValue(sheet, fmt.Sprintf("%s%d", excelColumns[i], excelHeaderRow), c.Title)
	}
	f.SetCellStyle(sheet,
		fmt.Sprintf("A%d", excelHeaderRow),
		fmt.Sprintf("%s%d", excelColumns[len(columns)-1], excelHeaderRow),
		styles.header)

	// ── Data rows ───────────────────────────────────────────────────────

	row := excelHeaderRow + 1
	for _, r := range data.Rows {
		for i, cell := range r.Cells {
			ref := fmt.Sprintf("%s%d", excelColumns[i], row)
			if columns[i].Numeric {
				f.SetCellValue(sheet, ref, cell.Amount.InexactFloat64())
				f.SetCellStyle(sheet, ref, ref, styles.money)
				continue
			}
			f.SetCellStr(sheet, ref, cell.Text)
			f.SetCellStyle(sheet, ref, ref, styles.text)
		}
		row++
	}

	// ── Total ───────────────────────────────────────────────────────────

	row++
	label, value := fmt.Sprintf("D%d", row), fmt.Sprintf("E%d", row)
	f.SetCellValue(sheet, label, "TOTAL:")
	f.SetCellStyle(sheet, label, label, styles.totalLabel)
	f.SetCellValue(sheet, value, data.Total.InexactFloat64())
	f.SetCellStyle(sheet, value, value, styles.totalValue)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

type excelStyles struct {
	company       int
	companyDetail int
	header        int
	text          int
	money         int
	totalLabel    int
	totalValue    int
}

func newExcelStyles(f *excelize.File, money MoneyFormat) (excelStyles, error) {
	var s excelStyles
	numFmt := money.ExcelNumberFormat()
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	defs := []struct {
		name  string
		dst   *int
		style *excelize.Style
	}{
		{"company", &s.company, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 14},
			Alignment: center,
		}},
		{"company detail", &s.companyDetail, &excelize.Style{
			Font:      &excelize.Font{Size: 11},
			Alignment: center,
		}},
		{"header", &s.header, &excelize.Style{
			Font:   &excelize.Font{Bold: true, Size: 11},
			Fill:   excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
			Border: thinBorders(),
		}},
		{"text", &s.text, &excelize.Style{
			Font:      &excelize.Font{Size: 10},
			Alignment: &excelize.Alignment{Horizontal: "left"},
			Border:    thinBorders(),
		}},
		{"money", &s.money, &excelize.Style{
			Font:         &excelize.Font{Size: 10},
			Alignment:    &excelize.Alignment{Horizontal: "right"},
			Border:       thinBorders(),
			CustomNumFmt: &numFmt,
		}},
		{"total label", &s.totalLabel, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 12},
			Alignment: &excelize.Alignment{Horizontal: "right"},
		}},
		{"total value", &s.totalValue, &excelize.Style{
			Font:         &excelize.Font{Bold: true, Size: 12},
			Alignment:    &excelize.Alignment{Horizontal: "right"},
			CustomNumFmt: &numFmt,
		}},
	}

	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return s, fmt.Errorf("create %s style: %w", d.name, err)
		}
		*d.dst = id
	}
	return s, nil
}

// thinBorders returns thin black borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
