package error

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatisticsError(t *testing.T) {
	t.Run("message includes wrapped error", func(t *testing.T) {
		err := NewStatisticsError(ErrCodeSourceUnavailable, "failed to fetch expenses", ErrSourceUnavailable)

		assert.Equal(t, "failed to fetch expenses: record source unavailable", err.Error())
		assert.True(t, errors.Is(err, ErrSourceUnavailable))
	})

	t.Run("message without wrapped error", func(t *testing.T) {
		err := NewStatisticsError(ErrCodeInvalidPeriod, "unknown period", nil)

		assert.Equal(t, "unknown period", err.Error())
	})

	t.Run("errors.As finds the code through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("use case: %w", NewStatisticsError(ErrCodeNoDataToExport, "nothing", ErrNoDataToExport))

		var statErr *StatisticsError
		if assert.True(t, errors.As(wrapped, &statErr)) {
			assert.Equal(t, ErrCodeNoDataToExport, statErr.Code)
		}
	})
}

func TestInvalidRangeError(t *testing.T) {
	start := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	err := NewInvalidRangeError(start, end)

	assert.Equal(t, "end date 2024-03-01 is before start date 2024-03-10", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidDateRange))
	assert.False(t, errors.Is(err, ErrMalformedRecordDate))
}

func TestMalformedRecordError(t *testing.T) {
	tests := []struct {
		name     string
		err      *MalformedRecordError
		expected string
	}{
		{
			name:     "malformed date",
			err:      NewMalformedRecordError("expense", 12, "not-a-date"),
			expected: `expense 12 has malformed date "not-a-date"`,
		},
		{
			name:     "missing date",
			err:      NewMalformedRecordError("revenue", 3, ""),
			expected: "revenue 3 has no date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.True(t, errors.Is(tt.err, ErrMalformedRecordDate))
		})
	}
}
