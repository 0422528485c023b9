// Package persistence implements the record sources on top of the backend database.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/budgetwise/statistics/internal/application/adapter"
	"github.com/budgetwise/statistics/internal/domain/entity"
	domainerror "github.com/budgetwise/statistics/internal/domain/error"
	"github.com/budgetwise/statistics/internal/integration/persistence/model"
)

// RecordRepository reads expenses, revenues and budgets straight from the
// backend's tables. It never writes.
type RecordRepository struct {
	db *gorm.DB
}

// NewRecordRepository creates a new record repository instance.
func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{
		db: db,
	}
}

// ListExpenses returns the expenses matching the query, ordered by date.
func (r *RecordRepository) ListExpenses(ctx context.Context, query adapter.TransactionQuery) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	result := r.scoped(ctx, query).
		Preload("Category").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, sourceError("expenses", result.Error)
	}

	expenses := make([]*entity.Expense, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToEntity()
	}
	return expenses, nil
}

// ListRevenues returns the revenues matching the query, ordered by date.
func (r *RecordRepository) ListRevenues(ctx context.Context, query adapter.TransactionQuery) ([]*entity.Revenue, error) {
	var revenueModels []model.RevenueModel
	result := r.scoped(ctx, query).Find(&revenueModels)
	if result.Error != nil {
		return nil, sourceError("revenues", result.Error)
	}

	revenues := make([]*entity.Revenue, len(revenueModels))
	for i := range revenueModels {
		revenues[i] = revenueModels[i].ToEntity()
	}
	return revenues, nil
}

// GetBudgetByMonth returns the budget of a month or domainerror.ErrBudgetNotFound.
func (r *RecordRepository) GetBudgetByMonth(ctx context.Context, query adapter.BudgetQuery) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", query.UserID, query.Month).
		Order("id DESC").
		First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, sourceError("budgets", result.Error)
	}
	return budgetModel.ToEntity(), nil
}

// Name identifies the database in health responses.
func (r *RecordRepository) Name() string {
	return "database"
}

// Ping checks the database connection.
func (r *RecordRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return sourceError("connection", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return sourceError("connection", err)
	}
	return nil
}

// scoped applies the user, date range and limit of a query. The end date is inclusive.
func (r *RecordRepository) scoped(ctx context.Context, query adapter.TransactionQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Where("user_id = ?", query.UserID)

	if query.StartDate != nil {
		tx = tx.Where("date >= ?", *query.StartDate)
	}
	if query.EndDate != nil {
		tx = tx.Where("date <= ?", *query.EndDate)
	}
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}

	return tx.Order("date ASC").Order("id ASC")
}

func sourceError(table string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: failed to read %s: %v", domainerror.ErrSourceUnavailable, table, err)
}
