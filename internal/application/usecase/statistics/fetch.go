package statistics

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/budgetwise/statistics/internal/application/adapter"
	"github.com/budgetwise/statistics/internal/domain/entity"
	domainerror "github.com/budgetwise/statistics/internal/domain/error"
)

// FetchRecords lists expenses and revenues concurrently and waits for both.
// The first failure cancels the other call.
func FetchRecords(
	ctx context.Context,
	source adapter.TransactionSource,
	query adapter.TransactionQuery,
) ([]*entity.Expense, []*entity.Revenue, error) {
	var (
		expenses []*entity.Expense
		revenues []*entity.Revenue
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		expenses, err = source.ListExpenses(gctx, query)
		if err != nil {
			return fmt.Errorf("failed to list expenses: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		revenues, err = source.ListRevenues(gctx, query)
		if err != nil {
			return fmt.Errorf("failed to list revenues: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, WrapSourceError(err)
	}

	return expenses, revenues, nil
}

// WrapSourceError gives upstream failures a statistics error code so the
// controllers can map them to a status.
func WrapSourceError(err error) error {
	var statsErr *domainerror.StatisticsError
	if errors.As(err, &statsErr) {
		return err
	}

	switch {
	case errors.Is(err, domainerror.ErrSourceUnauthorized):
		return domainerror.NewStatisticsError(
			domainerror.ErrCodeSourceUnauthorized,
			"the record source rejected the credentials",
			err,
		)
	case errors.Is(err, domainerror.ErrSourceUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return domainerror.NewStatisticsError(
			domainerror.ErrCodeSourceUnavailable,
			"the record source is unavailable",
			err,
		)
	default:
		return err
	}
}
