// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

//go:generate mockgen -source=exporter.go -destination=mocks/exporter_mock.go -package=mocks

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// ExportRow is one record line of an export.
type ExportRow struct {
	Date        string
	Kind        string
	Description string
	Category    string
	ExpenseType string
	Amount      decimal.Decimal
}

// ExportCategoryRow is one line of the category breakdown of an export.
type ExportCategoryRow struct {
	Category         string
	TotalAmount      decimal.Decimal
	TransactionCount int
	Percentage       int
}

// ExportDocument is the content written by an Exporter.
type ExportDocument struct {
	StartDate  time.Time
	EndDate    time.Time
	Rows       []ExportRow
	Categories []ExportCategoryRow
}

// Exporter writes an export document in one file format.
type Exporter interface {
	// Format is the value of the format query parameter, e.g. "csv".
	Format() string

	// ContentType is the MIME type of the written document.
	ContentType() string

	// Write encodes the document to w.
	Write(w io.Writer, doc ExportDocument) error
}
