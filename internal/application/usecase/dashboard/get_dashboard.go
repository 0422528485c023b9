package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/budgetwise/statistics/internal/application/adapter"
	"github.com/budgetwise/statistics/internal/application/usecase/statistics"
	"github.com/budgetwise/statistics/internal/domain/entity"
)

const (
	// TopCategoriesLimit is the number of categories shown on the dashboard.
	TopCategoriesLimit = 5

	// RecentTransactionsLimit is the number of recent transactions shown on the dashboard.
	RecentTransactionsLimit = 5
)

// GetDashboardInput represents the input for getting the dashboard.
type GetDashboardInput struct {
	UserID      int64
	AccessToken string
}

// GetDashboardOutput represents the dashboard of the current month.
type GetDashboardOutput struct {
	Month              string
	CurrentBalance     decimal.Decimal
	MonthlyRevenue     decimal.Decimal
	MonthlyExpenses    decimal.Decimal
	Budget             BudgetProgress
	TopCategories      []statistics.CategoryTotal
	RecentTransactions []entity.Record
}

// GetDashboardUseCase handles building the dashboard.
type GetDashboardUseCase struct {
	transactions adapter.TransactionSource
	budgets      adapter.BudgetSource
	now          func() time.Time
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(
	transactions adapter.TransactionSource,
	budgets adapter.BudgetSource,
) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		transactions: transactions,
		budgets:      budgets,
		now:          time.Now,
	}
}

// Execute loads every record of the user together with the budget of the
// current month. The balance covers all time; the remaining figures cover the
// current month only.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*GetDashboardOutput, error) {
	monthStart, _ := statistics.ParseMonth("", uc.now())
	monthKey := statistics.MonthKey(monthStart)

	var (
		expenses []*entity.Expense
		revenues []*entity.Revenue
		budget   = decimal.Zero
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		expenses, revenues, err = statistics.FetchRecords(gctx, uc.transactions, adapter.TransactionQuery{
			UserID:      input.UserID,
			AccessToken: input.AccessToken,
		})
		return err
	})

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

	if err := g.Wait(); err != nil {
		return nil, statistics.WrapSourceError(err)
	}

	monthExpenses := expensesInMonth(expenses, monthKey)
	monthly := statistics.CompareRevenueExpense(monthExpenses, revenuesInMonth(revenues, monthKey))
	allTime := statistics.CompareRevenueExpense(expenses, revenues)

	return &GetDashboardOutput{
		Month:              monthKey,
		CurrentBalance:     allTime.TotalRevenue.Sub(allTime.TotalExpenses),
		MonthlyRevenue:     monthly.TotalRevenue,
		MonthlyExpenses:    monthly.TotalExpenses,
		Budget:             NewBudgetProgress(monthKey, budget, monthly.TotalExpenses),
		TopCategories:      statistics.TopCategories(statistics.ByCategory(monthExpenses), TopCategoriesLimit),
		RecentTransactions: RecentRecords(entity.Records(expenses, revenues), RecentTransactionsLimit),
	}, nil
}

// RecentRecords returns the n most recent records. Records are ordered by date
// descending, then by kind and by id descending; records without a valid date
// come last.
func RecentRecords(records []entity.Record, n int) []entity.Record {
	sorted := make([]entity.Record, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		ad, bd := a.Date(), b.Date()
		if ad.Valid() != bd.Valid() {
			return ad.Valid()
		}
		if !ad.Time().Equal(bd.Time()) {
			return ad.Time().After(bd.Time())
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.ID() > b.ID()
	})

	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func expensesInMonth(expenses []*entity.Expense, monthKey string) []*entity.Expense {
	filtered := make([]*entity.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Date.MonthKey() == monthKey {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func revenuesInMonth(revenues []*entity.Revenue, monthKey string) []*entity.Revenue {
	filtered := make([]*entity.Revenue, 0, len(revenues))
	for _, r := range revenues {
		if r.Date.MonthKey() == monthKey {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
