package dto

import (
	"github.com/budgetwise/statistics/internal/application/usecase/dashboard"
	"github.com/budgetwise/statistics/internal/domain/entity"
)

// BudgetProgressResponse represents the progress of a monthly budget.
type BudgetProgressResponse struct {
	Month          string  `json:"month"`
	Budget         float64 `json:"budget"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed int     `json:"percentage_used"`
	Status         string  `json:"status"`
	HasBudget      bool    `json:"has_budget"`
}

// RecentTransactionResponse represents one of the latest records on the dashboard.
type RecentTransactionResponse struct {
	ID          int64   `json:"id"`
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

// DashboardResponse represents the response for the dashboard API.
type DashboardResponse struct {
	Data DashboardData `json:"data"`
}

// DashboardData represents the data section of the dashboard response.
type DashboardData struct {
	Month              string                      `json:"month"`
	CurrentBalance     float64                     `json:"current_balance"`
	MonthlyRevenue     float64                     `json:"monthly_revenue"`
	MonthlyExpenses    float64                     `json:"monthly_expenses"`
	Budget             BudgetProgressResponse      `json:"budget"`
	TopCategories      []CategoryTotalResponse     `json:"top_categories"`
	RecentTransactions []RecentTransactionResponse `json:"recent_transactions"`
}

// BudgetProgressEnvelope wraps a budget progress.
type BudgetProgressEnvelope struct {
	Data BudgetProgressResponse `json:"data"`
}

// ToBudgetProgressResponse converts a BudgetProgress to its response DTO.
func ToBudgetProgressResponse(progress dashboard.BudgetProgress) BudgetProgressResponse {
	return BudgetProgressResponse{
		Month:          progress.Month,
		Budget:         toFloat(progress.Budget),
		Spent:          toFloat(progress.Spent),
		Remaining:      toFloat(progress.Remaining),
		PercentageUsed: progress.PercentageUsed,
		Status:         string(progress.Status),
		HasBudget:      progress.HasBudget,
	}
}

// ToRecentTransactionResponse converts a tagged record to its response DTO.
func ToRecentTransactionResponse(record entity.Record) RecentTransactionResponse {
	response := RecentTransactionResponse{
		ID:          record.ID(),
		Kind:        string(record.Kind),
		Description: record.Label(),
		Amount:      toFloat(record.Amount()),
		Date:        record.Date().String(),
	}
	if record.Kind == entity.RecordKindExpense {
		response.Category = record.Expense.CategoryName
	}
	return response
}

// ToDashboardResponse converts a GetDashboardOutput to DashboardResponse DTO.
func ToDashboardResponse(output *dashboard.GetDashboardOutput) DashboardResponse {
	recent := make([]RecentTransactionResponse, len(output.RecentTransactions))
	for i, record := range output.RecentTransactions {
		recent[i] = ToRecentTransactionResponse(record)
	}

	return DashboardResponse{
		Data: DashboardData{
			Month:              output.Month,
			CurrentBalance:     toFloat(output.CurrentBalance),
			MonthlyRevenue:     toFloat(output.MonthlyRevenue),
			MonthlyExpenses:    toFloat(output.MonthlyExpenses),
			Budget:             ToBudgetProgressResponse(output.Budget),
			TopCategories:      ToCategoryTotalsResponse(output.TopCategories),
			RecentTransactions: recent,
		},
	}
}
