// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/budgetwise/statistics/internal/application/usecase/statistics"
)

// BudgetStatus describes how much of a budget has been used.
type BudgetStatus string

const (
	BudgetStatusOK       BudgetStatus = "ok"
	BudgetStatusWarning  BudgetStatus = "warning"
	BudgetStatusExceeded BudgetStatus = "exceeded"
)

var (
	warningThreshold  = decimal.NewFromInt(80)
	exceededThreshold = decimal.NewFromInt(100)
)

// BudgetProgress compares the spending of a month with its budget.
type BudgetProgress struct {
	Month          string          `json:"month"`
	Budget         decimal.Decimal `json:"budget"`
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed int             `json:"percentage_used"`
	Status         BudgetStatus    `json:"status"`
	HasBudget      bool            `json:"has_budget"`
}

// NewBudgetProgress computes the progress of spent against budget.
// The status thresholds apply to the unrounded ratio; a zero budget always
// reports 0 % and status ok.
func NewBudgetProgress(month string, budget, spent decimal.Decimal) BudgetProgress {
	progress := BudgetProgress{
		Month:          month,
		Budget:         budget,
		Spent:          spent,
		Remaining:      budget.Sub(spent),
		PercentageUsed: statistics.Percentage(spent, budget),
		Status:         BudgetStatusOK,
		HasBudget:      budget.IsPositive(),
	}

	if !progress.HasBudget {
		return progress
	}

	ratio := spent.Mul(decimal.NewFromInt(100)).Div(budget)
	switch {
	case ratio.GreaterThan(exceededThreshold):
		progress.Status = BudgetStatusExceeded
	case ratio.GreaterThan(warningThreshold):
		progress.Status = BudgetStatusWarning
	}

	return progress
}
