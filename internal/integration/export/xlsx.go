package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/budgetwise/statistics/internal/application/adapter"
)

// Sheet names of the XLSX workbook.
const (
	RecordsSheet    = "Records"
	CategoriesSheet = "Categories"
)

// CategoryHeaders are the column titles of the category breakdown sheet.
var CategoryHeaders = []string{"Category", "Total", "Transactions", "Percentage"}

// XLSXExporter writes the record listing and the category breakdown as an Excel workbook.
type XLSXExporter struct{}

// NewXLSXExporter creates a new XLSXExporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Format returns "xlsx".
func (e *XLSXExporter) Format() string {
	return "xlsx"
}

// ContentType returns the MIME type of Excel workbooks.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Write encodes doc as a workbook with a Records and a Categories sheet.
func (e *XLSXExporter) Write(w io.Writer, doc adapter.ExportDocument) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RecordsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(CategoriesSheet); err != nil {
		return fmt.Errorf("failed to create categories sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2D3436"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	amountStyle, err := f.NewStyle(&excelize.Style{
		NumFmt:    4,
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return fmt.Errorf("failed to create amount style: %w", err)
	}

	if err := writeHeaders(f, RecordsSheet, RecordHeaders, headerStyle); err != nil {
		return err
	}
	for i, row := range doc.Rows {
		values := []interface{}{
			row.Date,
			row.Kind,
			row.Description,
			row.Category,
			row.ExpenseType,
			row.Amount.InexactFloat64(),
		}
		if err := writeRow(f, RecordsSheet, i+2, values); err != nil {
			return err
		}
	}
	if len(doc.Rows) > 0 {
		last := fmt.Sprintf("F%d", len(doc.Rows)+1)
		if err := f.SetCellStyle(RecordsSheet, "F2", last, amountStyle); err != nil {
			return fmt.Errorf("failed to style amounts: %w", err)
		}
	}

	if err := writeHeaders(f, CategoriesSheet, CategoryHeaders, headerStyle); err != nil {
		return err
	}
	for i, row := range doc.Categories {
		values := []interface{}{
			row.Category,
			row.TotalAmount.InexactFloat64(),
			row.TransactionCount,
			fmt.Sprintf("%d%%", row.Percentage),
		}
		if err := writeRow(f, CategoriesSheet, i+2, values); err != nil {
			return err
		}
	}
	if len(doc.Categories) > 0 {
		last := fmt.Sprintf("B%d", len(doc.Categories)+1)
		if err := f.SetCellStyle(CategoriesSheet, "B2", last, amountStyle); err != nil {
			return fmt.Errorf("failed to style totals: %w", err)
		}
	}

	_ = f.SetColWidth(RecordsSheet, "A", "A", 14)
	_ = f.SetColWidth(RecordsSheet, "B", "B", 12)
	_ = f.SetColWidth(RecordsSheet, "C", "D", 28)
	_ = f.SetColWidth(RecordsSheet, "E", "F", 16)
	_ = f.SetColWidth(CategoriesSheet, "A", "A", 28)
	_ = f.SetColWidth(CategoriesSheet, "B", "D", 16)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string, style int) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header %s: %w", cell, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}

var _ adapter.Exporter = (*XLSXExporter)(nil)
