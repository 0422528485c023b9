package statistics

import (
	"context"
	"log/slog"
	"time"

	"github.com/budgetwise/statistics/internal/application/adapter"
	"github.com/budgetwise/statistics/internal/domain/entity"
	domainerror "github.com/budgetwise/statistics/internal/domain/error"
)

// GetStatisticsInput represents the input for building the statistics report.
type GetStatisticsInput struct {
	UserID      int64
	AccessToken string
	Period      string // month, year or custom
	StartDate   string // YYYY-MM-DD, custom periods only
	EndDate     string // YYYY-MM-DD, custom periods only
	TopLimit    int    // Zero keeps every category in TopCategories
}

// GetStatisticsOutput is the full statistics report of one period.
type GetStatisticsOutput struct {
	Period         Period
	Summary        PeriodSummary
	Categories     []CategoryTotal
	Monthly        []MonthlyBucket
	Types          []CategoryTotal
	Comparison     Comparison
	TopCategories  []CategoryTotal
	ExpenseCount   int
	RevenueCount   int
	SkippedCount   int
	SkippedRecords []*domainerror.MalformedRecordError
	Expenses       []*entity.Expense
	Revenues       []*entity.Revenue
}

// GetStatisticsUseCase handles building the statistics report for a period.
type GetStatisticsUseCase struct {
	source adapter.TransactionSource
	now    func() time.Time
}

// NewGetStatisticsUseCase creates a new GetStatisticsUseCase instance.
func NewGetStatisticsUseCase(source adapter.TransactionSource) *GetStatisticsUseCase {
	return &GetStatisticsUseCase{
		source: source,
		now:    time.Now,
	}
}

// Execute resolves the period, fetches its records and aggregates them.
func (uc *GetStatisticsUseCase) Execute(ctx context.Context, input GetStatisticsInput) (*GetStatisticsOutput, error) {
	period, err := ResolvePeriod(input.Period, uc.now(), input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	expenses, revenues, err := FetchRecords(ctx, uc.source, adapter.TransactionQuery{
		UserID:      input.UserID,
		AccessToken: input.AccessToken,
		StartDate:   &period.StartDate,
		EndDate:     &period.EndDate,
	})
	if err != nil {
		return nil, err
	}

	return BuildReport(ctx, period, expenses, revenues, input.TopLimit), nil
}

// BuildReport aggregates already fetched records into a report.
func BuildReport(
	ctx context.Context,
	period Period,
	expenses []*entity.Expense,
	revenues []*entity.Revenue,
	topLimit int,
) *GetStatisticsOutput {
	summary, err := Summarize(expenses, revenues, period.StartDate, period.EndDate)
	if err != nil {
		slog.WarnContext(ctx, "Summarizing period with invalid range", "error", err)
	}

	categories := ByCategory(expenses)
	series := ByMonth(expenses, revenues)
	if series.SkippedCount() > 0 {
		slog.WarnContext(ctx, "Skipped records with malformed dates",
			"skipped", series.SkippedCount(),
			"first", series.Skipped[0].Error(),
		)
	}

	top := categories
	if topLimit > 0 {
		top = TopCategories(categories, topLimit)
	}

	return &GetStatisticsOutput{
		Period:         period,
		Summary:        summary,
		Categories:     categories,
		Monthly:        series.Buckets,
		Types:          ByType(expenses),
		Comparison:     CompareRevenueExpense(expenses, revenues),
		TopCategories:  top,
		ExpenseCount:   len(expenses),
		RevenueCount:   len(revenues),
		SkippedCount:   series.SkippedCount(),
		SkippedRecords: series.Skipped,
		Expenses:       expenses,
		Revenues:       revenues,
	}
}
