package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/budgetwise/statistics/internal/application/adapter"
	"github.com/budgetwise/statistics/internal/application/adapter/mocks"
	"github.com/budgetwise/statistics/internal/domain/entity"
	domainerror "github.com/budgetwise/statistics/internal/domain/error"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGetStatisticsUseCase_Execute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockTransactionSource(ctrl)
	uc := NewGetStatisticsUseCase(source)
	uc.now = fixedClock(time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC))

	ctx := context.Background()
	matchQuery := gomock.Cond(func(x any) bool {
		q, ok := x.(adapter.TransactionQuery)
		return ok && q.UserID == 7 && q.AccessToken == "token" &&
			q.StartDate.Equal(day(2024, 3, 1)) && q.EndDate.Equal(day(2024, 3, 31))
	})

	source.EXPECT().
		ListExpenses(gomock.Any(), matchQuery).
		Return([]*entity.Expense{
			expense(1, "50", catID(1), "Food", "2024-03-02"),
			expense(2, "30", catID(2), "Transport", "2024-03-10"),
			expense(3, "5", nil, "", "garbage"),
		}, nil)
	source.EXPECT().
		ListRevenues(gomock.Any(), matchQuery).
		Return([]*entity.Revenue{revenue(1, "200", "2024-03-01")}, nil)

	output, err := uc.Execute(ctx, GetStatisticsInput{
		UserID:      7,
		AccessToken: "token",
		Period:      "month",
		TopLimit:    2,
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, PeriodMonth, output.Period.Kind)
	assert.Equal(t, "Mar 2024", output.Period.Label)
	assert.True(t, dec("200").Equal(output.Summary.TotalRevenue))
	assert.True(t, dec("85").Equal(output.Summary.TotalExpenses))
	assert.True(t, dec("115").Equal(output.Summary.NetBalance))
	assert.Len(t, output.Categories, 3)
	assert.Len(t, output.TopCategories, 2)
	assert.Equal(t, "1", output.TopCategories[0].CategoryID)
	require.Len(t, output.Monthly, 1)
	assert.Equal(t, "2024-03", output.Monthly[0].MonthKey)
	assert.Equal(t, 1, output.SkippedCount)
	assert.Equal(t, 3, output.ExpenseCount)
	assert.Equal(t, 1, output.RevenueCount)
	assert.True(t, dec("85").Equal(output.Comparison.TotalExpenses))
	require.Len(t, output.Types, 1)
	assert.Equal(t, "variable", output.Types[0].CategoryID)
}

func TestGetStatisticsUseCase_InvalidPeriod(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockTransactionSource(ctrl)
	uc := NewGetStatisticsUseCase(source)

	_, err := uc.Execute(context.Background(), GetStatisticsInput{
		Period:    "custom",
		StartDate: "2024-03-10",
		EndDate:   "2024-03-01",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerror.ErrInvalidDateRange))
}

func TestGetStatisticsUseCase_SourceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode domainerror.StatisticsErrorCode
	}{
		{name: "unauthorized", err: domainerror.ErrSourceUnauthorized, wantCode: domainerror.ErrCodeSourceUnauthorized},
		{name: "unavailable", err: domainerror.ErrSourceUnavailable, wantCode: domainerror.ErrCodeSourceUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, wantCode: domainerror.ErrCodeSourceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			source := mocks.NewMockTransactionSource(ctrl)
			uc := NewGetStatisticsUseCase(source)

			source.EXPECT().ListExpenses(gomock.Any(), gomock.Any()).Return(nil, tt.err)
			source.EXPECT().ListRevenues(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

			_, err := uc.Execute(context.Background(), GetStatisticsInput{UserID: 1})

			require.Error(t, err)
			var statsErr *domainerror.StatisticsError
			require.True(t, errors.As(err, &statsErr))
			assert.Equal(t, tt.wantCode, statsErr.Code)
			assert.True(t, errors.Is(err, tt.err))
		})
	}
}

func TestFetchRecords_CancelsSiblingOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockTransactionSource(ctrl)
	boom := errors.New("boom")

	source.EXPECT().ListExpenses(gomock.Any(), gomock.Any()).Return(nil, boom)
	source.EXPECT().
		ListRevenues(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ adapter.TransactionQuery) ([]*entity.Revenue, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	expenses, revenues, err := FetchRecords(context.Background(), source, adapter.TransactionQuery{UserID: 1})

	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Nil(t, expenses)
	assert.Nil(t, revenues)
}
