package dto

import (
	"github.com/budgetwise/statistics/internal/application/usecase/statistics"
)

// StatisticsQuery holds the period selection shared by the statistics endpoints.
type StatisticsQuery struct {
	Period    string
	StartDate string
	EndDate   string
}

// PeriodResponse represents a resolved period.
type PeriodResponse struct {
	Kind      string `json:"kind"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Label     string `json:"label"`
}

// SummaryResponse represents the headline totals of a period.
type SummaryResponse struct {
	TotalRevenue      float64 `json:"total_revenue"`
	TotalExpenses     float64 `json:"total_expenses"`
	NetBalance        float64 `json:"net_balance"`
	AverageDailySpend float64 `json:"average_daily_spend"`
}

// CategoryTotalResponse represents one bucket of a category or type breakdown.
type CategoryTotalResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	TotalAmount      float64 `json:"total_amount"`
	TransactionCount int     `json:"transaction_count"`
	Percentage       int     `json:"percentage"`
}

// MonthlyBucketResponse represents the totals of one month.
type MonthlyBucketResponse struct {
	Month        string  `json:"month"`
	TotalExpense float64 `json:"total_expense"`
	TotalRevenue float64 `json:"total_revenue"`
}

// ComparisonResponse represents the revenue versus expense comparison.
type ComparisonResponse struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalExpenses float64 `json:"total_expenses"`
}

// SkippedRecordResponse identifies a record left out of the monthly series.
type SkippedRecordResponse struct {
	Kind    string `json:"kind"`
	ID      int64  `json:"id"`
	RawDate string `json:"raw_date"`
}

// StatisticsResponse represents the full statistics report.
type StatisticsResponse struct {
	Data StatisticsData `json:"data"`
}

// StatisticsData represents the data section of the statistics response.
type StatisticsData struct {
	Period         PeriodResponse          `json:"period"`
	Summary        SummaryResponse         `json:"summary"`
	Categories     []CategoryTotalResponse `json:"categories"`
	Monthly        []MonthlyBucketResponse `json:"monthly"`
	Types          []CategoryTotalResponse `json:"types"`
	Comparison     ComparisonResponse      `json:"comparison"`
	TopCategories  []CategoryTotalResponse `json:"top_categories"`
	ExpenseCount   int                     `json:"expense_count"`
	RevenueCount   int                     `json:"revenue_count"`
	SkippedCount   int                     `json:"skipped_count"`
	SkippedRecords []SkippedRecordResponse `json:"skipped_records"`
}

// SummaryEnvelope wraps a single summary.
type SummaryEnvelope struct {
	Period PeriodResponse  `json:"period"`
	Data   SummaryResponse `json:"data"`
}

// CategoryTotalsEnvelope wraps a category or type breakdown.
type CategoryTotalsEnvelope struct {
	Period PeriodResponse          `json:"period"`
	Data   []CategoryTotalResponse `json:"data"`
}

// MonthlyEnvelope wraps the monthly series.
type MonthlyEnvelope struct {
	Period       PeriodResponse          `json:"period"`
	Data         []MonthlyBucketResponse `json:"data"`
	SkippedCount int                     `json:"skipped_count"`
}

// ComparisonEnvelope wraps the revenue versus expense comparison.
type ComparisonEnvelope struct {
	Period PeriodResponse     `json:"period"`
	Data   ComparisonResponse `json:"data"`
}

// ToPeriodResponse converts a resolved period to its response DTO.
func ToPeriodResponse(period statistics.Period) PeriodResponse {
	return PeriodResponse{
		Kind:      string(period.Kind),
		StartDate: period.StartDate.Format("2006-01-02"),
		EndDate:   period.EndDate.Format("2006-01-02"),
		Label:     period.Label,
	}
}

// ToSummaryResponse converts a PeriodSummary to its response DTO.
func ToSummaryResponse(summary statistics.PeriodSummary) SummaryResponse {
	return SummaryResponse{
		TotalRevenue:      toFloat(summary.TotalRevenue),
		TotalExpenses:     toFloat(summary.TotalExpenses),
		NetBalance:        toFloat(summary.NetBalance),
		AverageDailySpend: toFloat(summary.AverageDailySpend),
	}
}

// ToCategoryTotalsResponse converts a breakdown to its response DTOs.
func ToCategoryTotalsResponse(totals []statistics.CategoryTotal) []CategoryTotalResponse {
	result := make([]CategoryTotalResponse, len(totals))
	for i, total := range totals {
		result[i] = CategoryTotalResponse{
			ID:               total.CategoryID,
			Name:             total.CategoryName,
			TotalAmount:      toFloat(total.TotalAmount),
			TransactionCount: total.TransactionCount,
			Percentage:       total.Percentage,
		}
	}
	return result
}

// ToMonthlyResponse converts the monthly buckets to their response DTOs.
func ToMonthlyResponse(buckets []statistics.MonthlyBucket) []MonthlyBucketResponse {
	result := make([]MonthlyBucketResponse, len(buckets))
	for i, bucket := range buckets {
		result[i] = MonthlyBucketResponse{
			Month:        bucket.MonthKey,
			TotalExpense: toFloat(bucket.TotalExpense),
			TotalRevenue: toFloat(bucket.TotalRevenue),
		}
	}
	return result
}

// ToComparisonResponse converts a Comparison to its response DTO.
func ToComparisonResponse(comparison statistics.Comparison) ComparisonResponse {
	return ComparisonResponse{
		TotalRevenue:  toFloat(comparison.TotalRevenue),
		TotalExpenses: toFloat(comparison.TotalExpenses),
	}
}

// ToStatisticsResponse converts a GetStatisticsOutput to StatisticsResponse DTO.
func ToStatisticsResponse(output *statistics.GetStatisticsOutput) StatisticsResponse {
	skipped := make([]SkippedRecordResponse, len(output.SkippedRecords))
	for i, record := range output.SkippedRecords {
		skipped[i] = SkippedRecordResponse{
			Kind:    record.Kind,
			ID:      record.RecordID,
			RawDate: record.RawDate,
		}
	}

	return StatisticsResponse{
		Data: StatisticsData{
			Period:         ToPeriodResponse(output.Period),
			Summary:        ToSummaryResponse(output.Summary),
			Categories:     ToCategoryTotalsResponse(output.Categories),
			Monthly:        ToMonthlyResponse(output.Monthly),
			Types:          ToCategoryTotalsResponse(output.Types),
			Comparison:     ToComparisonResponse(output.Comparison),
			TopCategories:  ToCategoryTotalsResponse(output.TopCategories),
			ExpenseCount:   output.ExpenseCount,
			RevenueCount:   output.RevenueCount,
			SkippedCount:   output.SkippedCount,
			SkippedRecords: skipped,
		},
	}
}
