package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/budgetwise/statistics/internal/application/adapter"
	"github.com/budgetwise/statistics/internal/application/usecase/statistics"
	domainerror "github.com/budgetwise/statistics/internal/domain/error"
)

// GetBudgetProgressInput represents the input for getting the budget progress of a month.
type GetBudgetProgressInput struct {
	UserID      int64
	AccessToken string
	Month       string // YYYY-MM, empty means the current month
}

// GetBudgetProgressUseCase handles comparing a month's expenses with its budget.
type GetBudgetProgressUseCase struct {
	transactions adapter.TransactionSource
	budgets      adapter.BudgetSource
	now          func() time.Time
}

// NewGetBudgetProgressUseCase creates a new GetBudgetProgressUseCase instance.
func NewGetBudgetProgressUseCase(
	transactions adapter.TransactionSource,
	budgets adapter.BudgetSource,
) *GetBudgetProgressUseCase {
	return &GetBudgetProgressUseCase{
		transactions: transactions,
		budgets:      budgets,
		now:          time.Now,
	}
}

// Execute fetches the budget and the expenses of the month concurrently.
func (uc *GetBudgetProgressUseCase) Execute(ctx context.Context, input GetBudgetProgressInput) (*BudgetProgress, error) {
	monthStart, err := statistics.ParseMonth(input.Month, uc.now())
	if err != nil {
		return nil, err
	}
	monthEnd := monthStart.AddDate(0, 1, -1)
	monthKey := statistics.MonthKey(monthStart)

	var (
		budget = decimal.Zero
		spent  = decimal.Zero
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		amount, err := loadBudget(gctx, uc.budgets, adapter.BudgetQuery{
			UserID:      input.UserID,
			AccessToken: input.AccessToken,
			Month:       monthKey,
		})
		if err != nil {
			return err
		}
		budget = amount
		return nil
	})

	g.Go(func() error {
		expenses, err := uc.transactions.ListExpenses(gctx, adapter.TransactionQuery{
			UserID:      input.UserID,
			AccessToken: input.AccessToken,
			StartDate:   &monthStart,
			EndDate:     &monthEnd,
		})
		if err != nil {
			return fmt.Errorf("failed to list expenses: %w", err)
		}
		spent = statistics.CompareRevenueExpense(expenses, nil).TotalExpenses
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, statistics.WrapSourceError(err)
	}

	progress := NewBudgetProgress(monthKey, budget, spent)
	return &progress, nil
}

// loadBudget returns the budget amount of a month, zero when none was set.
func loadBudget(ctx context.Context, budgets adapter.BudgetSource, query adapter.BudgetQuery) (decimal.Decimal, error) {
	budget, err := budgets.GetBudgetByMonth(ctx, query)
	if errors.Is(err, domainerror.ErrBudgetNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget.Amount, nil
}
