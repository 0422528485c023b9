package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/budgetwise/statistics/internal/application/adapter"
	"github.com/budgetwise/statistics/internal/application/adapter/mocks"
	"github.com/budgetwise/statistics/internal/domain/entity"
	domainerror "github.com/budgetwise/statistics/internal/domain/error"
)

func TestGetBudgetProgressUseCase_Execute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transactions := mocks.NewMockTransactionSource(ctrl)
	budgets := mocks.NewMockBudgetSource(ctrl)
	uc := NewGetBudgetProgressUseCase(transactions, budgets)

	transactions.EXPECT().
		ListExpenses(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query adapter.TransactionQuery) ([]*entity.Expense, error) {
			assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), *query.StartDate)
			assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), *query.EndDate)
			return []*entity.Expense{
				newExpense(1, "300", nil, "", "2024-02-03"),
				newExpense(2, "250", nil, "", "2024-02-14"),
			}, nil
		})
	budgets.EXPECT().
		GetBudgetByMonth(gomock.Any(), adapter.BudgetQuery{UserID: 9, Month: "2024-02"}).
		Return(&entity.Budget{Month: "2024-02", Amount: decimal.NewFromInt(500)}, nil)

	progress, err := uc.Execute(context.Background(), GetBudgetProgressInput{UserID: 9, Month: "2024-02"})

	require.NoError(t, err)
	assert.Equal(t, "2024-02", progress.Month)
	assert.True(t, decimal.NewFromInt(550).Equal(progress.Spent))
	assert.Equal(t, 110, progress.PercentageUsed)
	assert.Equal(t, BudgetStatusExceeded, progress.Status)
}

func TestGetBudgetProgressUseCase_InvalidMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := NewGetBudgetProgressUseCase(mocks.NewMockTransactionSource(ctrl), mocks.NewMockBudgetSource(ctrl))

	_, err := uc.Execute(context.Background(), GetBudgetProgressInput{UserID: 9, Month: "02/2024"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerror.ErrInvalidMonthFormat))
}

func TestGetBudgetProgressUseCase_DefaultsToCurrentMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transactions := mocks.NewMockTransactionSource(ctrl)
	budgets := mocks.NewMockBudgetSource(ctrl)
	uc := NewGetBudgetProgressUseCase(transactions, budgets)
	uc.now = func() time.Time { return time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC) }

	transactions.EXPECT().ListExpenses(gomock.Any(), gomock.Any()).Return(nil, nil)
	budgets.EXPECT().
		GetBudgetByMonth(gomock.Any(), adapter.BudgetQuery{UserID: 9, Month: "2023-12"}).
		Return(nil, domainerror.ErrBudgetNotFound)

	progress, err := uc.Execute(context.Background(), GetBudgetProgressInput{UserID: 9})

	require.NoError(t, err)
	assert.Equal(t, "2023-12", progress.Month)
	assert.False(t, progress.HasBudget)
	assert.Equal(t, BudgetStatusOK, progress.Status)
}
