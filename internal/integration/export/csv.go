// Package export provides the file encoders used by the statistics export.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/budgetwise/statistics/internal/application/adapter"
)

// RecordHeaders are the column titles of the record listing.
var RecordHeaders = []string{"Date", "Kind", "Description", "Category", "Expense type", "Amount"}

// CSVExporter writes the record listing as comma separated values.
type CSVExporter struct{}

// NewCSVExporter creates a new CSVExporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Format returns "csv".
func (e *CSVExporter) Format() string {
	return "csv"
}

// ContentType returns the MIME type of CSV documents.
func (e *CSVExporter) ContentType() string {
	return "text/csv; charset=utf-8"
}

// Write encodes the rows of doc to w. The category breakdown is not part of the CSV file.
func (e *CSVExporter) Write(w io.Writer, doc adapter.ExportDocument) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(RecordHeaders); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, row := range doc.Rows {
		record := []string{
			row.Date,
			row.Kind,
			row.Description,
			row.Category,
			row.ExpenseType,
			row.Amount.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

var _ adapter.Exporter = (*CSVExporter)(nil)
