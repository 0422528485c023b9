package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/budgetwise/statistics/internal/application/adapter"
)

func sampleDocument() adapter.ExportDocument {
	return adapter.ExportDocument{
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Rows: []adapter.ExportRow{
			{Date: "2024-03-02", Kind: "Expense", Description: "Groceries, weekly", Category: "Food", ExpenseType: "variable", Amount: decimal.RequireFromString("50.5")},
			{Date: "2024-03-01", Kind: "Revenue", Description: "Salary", Category: "Revenue", Amount: decimal.NewFromInt(200)},
		},
		Categories: []adapter.ExportCategoryRow{
			{Category: "Food", TotalAmount: decimal.RequireFromString("50.5"), TransactionCount: 1, Percentage: 100},
		},
	}
}

func TestCSVExporter_Write(t *testing.T) {
	exporter := NewCSVExporter()
	assert.Equal(t, "csv", exporter.Format())
	assert.Equal(t, "text/csv; charset=utf-8", exporter.ContentType())

	var buf bytes.Buffer
	require.NoError(t, exporter.Write(&buf, sampleDocument()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, RecordHeaders, records[0])
	assert.Equal(t, []string{"2024-03-02", "Expense", "Groceries, weekly", "Food", "variable", "50.50"}, records[1])
	assert.Equal(t, []string{"2024-03-01", "Revenue", "Salary", "Revenue", "", "200.00"}, records[2])
}

func TestCSVExporter_WriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter().Write(&buf, adapter.ExportDocument{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestXLSXExporter_Write(t *testing.T) {
	exporter := NewXLSXExporter()
	assert.Equal(t, "xlsx", exporter.Format())

	var buf bytes.Buffer
	require.NoError(t, exporter.Write(&buf, sampleDocument()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{RecordsSheet, CategoriesSheet}, f.GetSheetList())

	rows, err := f.GetRows(RecordsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, RecordHeaders, rows[0])
	assert.Equal(t, "Groceries, weekly", rows[1][2])
	assert.Equal(t, "Revenue", rows[2][1])

	amount, err := f.GetCellValue(RecordsSheet, "F3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "200", amount)

	categories, err := f.GetRows(CategoriesSheet)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, CategoryHeaders, categories[0])
	assert.Equal(t, "Food", categories[1][0])
	assert.Equal(t, "1", categories[1][2])
	assert.Equal(t, "100%", categories[1][3])
}
