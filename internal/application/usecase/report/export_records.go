// Package report contains the export and emailed report use cases.
package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/budgetwise/statistics/internal/application/adapter"
	"github.com/budgetwise/statistics/internal/application/usecase/statistics"
	"github.com/budgetwise/statistics/internal/domain/entity"
	domainerror "github.com/budgetwise/statistics/internal/domain/error"
)

// DefaultExportFormat is used when the request names no format.
const DefaultExportFormat = "csv"

// Labels written in the Kind and Category columns.
const (
	ExpenseLabel = "Expense"
	RevenueLabel = "Revenue"
)

// ExportRecordsInput represents the input for exporting the records of a period.
type ExportRecordsInput struct {
	UserID      int64
	AccessToken string
	Period      string
	StartDate   string
	EndDate     string
	Format      string
}

// ExportRecordsOutput is an export file ready to be downloaded.
type ExportRecordsOutput struct {
	Filename    string
	ContentType string
	Content     []byte
	RowCount    int
}

// ExportRecordsUseCase handles exporting the records of a period.
type ExportRecordsUseCase struct {
	source    adapter.TransactionSource
	exporters map[string]adapter.Exporter
	now       func() time.Time
}

// NewExportRecordsUseCase creates a new ExportRecordsUseCase instance.
func NewExportRecordsUseCase(source adapter.TransactionSource, exporters ...adapter.Exporter) *ExportRecordsUseCase {
	byFormat := make(map[string]adapter.Exporter, len(exporters))
	for _, exporter := range exporters {
		byFormat[exporter.Format()] = exporter
	}

	return &ExportRecordsUseCase{
		source:    source,
		exporters: byFormat,
		now:       time.Now,
	}
}

// Execute fetches the records of the period and encodes them in the requested format.
func (uc *ExportRecordsUseCase) Execute(ctx context.Context, input ExportRecordsInput) (*ExportRecordsOutput, error) {
	format := strings.ToLower(strings.TrimSpace(input.Format))
	if format == "" {
		format = DefaultExportFormat
	}

	exporter, ok := uc.exporters[format]
	if !ok {
		return nil, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidExportFormat,
			domainerror.ErrInvalidExportFormat.Error(),
			domainerror.ErrInvalidExportFormat,
		)
	}

	now := uc.now()
	period, err := statistics.ResolvePeriod(input.Period, now, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	expenses, revenues, err := statistics.FetchRecords(ctx, uc.source, adapter.TransactionQuery{
		UserID:      input.UserID,
		AccessToken: input.AccessToken,
		StartDate:   &period.StartDate,
		EndDate:     &period.EndDate,
	})
	if err != nil {
		return nil, err
	}

	if len(expenses) == 0 && len(revenues) == 0 {
		return nil, domainerror.NewStatisticsError(
			domainerror.ErrCodeNoDataToExport,
			domainerror.ErrNoDataToExport.Error(),
			domainerror.ErrNoDataToExport,
		)
	}

	doc := BuildExportDocument(period, expenses, revenues)

	var buf bytes.Buffer
	if err := exporter.Write(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to write %s export: %w", format, err)
	}

	return &ExportRecordsOutput{
		Filename:    fmt.Sprintf("statistics_%s.%s", now.Format("2006-01-02"), format),
		ContentType: exporter.ContentType(),
		Content:     buf.Bytes(),
		RowCount:    len(doc.Rows),
	}, nil
}

// BuildExportDocument flattens the records of a period into export rows,
// expenses first, and attaches the category breakdown.
func BuildExportDocument(period statistics.Period, expenses []*entity.Expense, revenues []*entity.Revenue) adapter.ExportDocument {
	records := entity.Records(expenses, revenues)
	rows := make([]adapter.ExportRow, 0, len(records))

	for _, record := range records {
		row := adapter.ExportRow{
			Date:   record.Date().String(),
			Amount: record.Amount(),
		}

		switch record.Kind {
		case entity.RecordKindExpense:
			row.Kind = ExpenseLabel
			row.Description = record.Expense.Description
			row.Category = expenseCategoryLabel(record.Expense)
			row.ExpenseType = string(record.Expense.Type)
		case entity.RecordKindRevenue:
			row.Kind = RevenueLabel
			row.Description = record.Revenue.Source
			row.Category = RevenueLabel
		}

		rows = append(rows, row)
	}

	return adapter.ExportDocument{
		StartDate:  period.StartDate,
		EndDate:    period.EndDate,
		Rows:       rows,
		Categories: CategoryRows(statistics.ByCategory(expenses)),
	}
}

// CategoryRows converts a category breakdown into export rows.
func CategoryRows(totals []statistics.CategoryTotal) []adapter.ExportCategoryRow {
	rows := make([]adapter.ExportCategoryRow, 0, len(totals))
	for _, total := range totals {
		rows = append(rows, adapter.ExportCategoryRow{
			Category:         total.CategoryName,
			TotalAmount:      total.TotalAmount,
			TransactionCount: total.TransactionCount,
			Percentage:       total.Percentage,
		})
	}
	return rows
}

func expenseCategoryLabel(e *entity.Expense) string {
	switch {
	case e.CategoryName != "":
		return e.CategoryName
	case e.HasCategory():
		return fmt.Sprintf("Category %d", *e.CategoryID)
	default:
		return statistics.UncategorizedName
	}
}
