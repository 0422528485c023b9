// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

//go:generate mockgen -source=record_source.go -destination=mocks/record_source_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/budgetwise/statistics/internal/domain/entity"
)

// TransactionQuery selects the records of one user.
type TransactionQuery struct {
	UserID      int64
	AccessToken string // Forwarded to the backend, ignored by database sources
	StartDate   *time.Time
	EndDate     *time.Time
	Limit       int // Zero means the source default
}

// BudgetQuery selects the budget of one user for one month.
type BudgetQuery struct {
	UserID      int64
	AccessToken string
	Month       string // YYYY-MM
}

// TransactionSource defines the interface for reading expense and revenue records.
// Implementations must be safe for concurrent use; the two list calls are issued in parallel.
type TransactionSource interface {
	// ListExpenses returns the expenses matching the query, ordered by date.
	ListExpenses(ctx context.Context, query TransactionQuery) ([]*entity.Expense, error)

	// ListRevenues returns the revenues matching the query, ordered by date.
	ListRevenues(ctx context.Context, query TransactionQuery) ([]*entity.Revenue, error)
}

// BudgetSource defines the interface for reading monthly budgets.
type BudgetSource interface {
	// GetBudgetByMonth returns the budget of the month.
	// Returns domainerror.ErrBudgetNotFound when the user has none.
	GetBudgetByMonth(ctx context.Context, query BudgetQuery) (*entity.Budget, error)
}

// HealthChecker reports whether an upstream dependency is reachable.
type HealthChecker interface {
	// Name identifies the dependency in health responses.
	Name() string

	// Ping returns an error when the dependency cannot be reached.
	Ping(ctx context.Context) error
}
