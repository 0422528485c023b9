package statistics

import (
	"fmt"
	"strings"
	"time"

	domainerror "github.com/budgetwise/statistics/internal/domain/error"
)

// PeriodKind selects how a reporting period is derived.
type PeriodKind string

const (
	PeriodMonth  PeriodKind = "month"
	PeriodYear   PeriodKind = "year"
	PeriodCustom PeriodKind = "custom"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Period is a resolved reporting period. Both bounds are calendar dates at
// midnight UTC and the end date is inclusive.
type Period struct {
	Kind      PeriodKind `json:"kind"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
	Label     string     `json:"label"`
}

// ResolvePeriod turns the period selection of a request into concrete dates.
//   - month: first day of the current month until today
//   - year: January 1st of the current year until today
//   - custom: startDate and endDate, both required, formatted YYYY-MM-DD
//
// An empty kind means month.
func ResolvePeriod(kind string, now time.Time, startDate, endDate string) (Period, error) {
	today := truncateToDay(now)

	var period Period
	switch PeriodKind(strings.ToLower(strings.TrimSpace(kind))) {
	case "", PeriodMonth:
		period = Period{
			Kind:      PeriodMonth,
			StartDate: time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC),
			EndDate:   today,
		}
	case PeriodYear:
		period = Period{
			Kind:      PeriodYear,
			StartDate: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   today,
		}
	case PeriodCustom:
		start, end, err := parseCustomRange(startDate, endDate)
		if err != nil {
			return Period{}, err
		}
		period = Period{Kind: PeriodCustom, StartDate: start, EndDate: end}
	default:
		return Period{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidPeriod,
			domainerror.ErrInvalidPeriod.Error(),
			domainerror.ErrInvalidPeriod,
		)
	}

	if period.Kind == PeriodYear {
		period.Label = fmt.Sprintf("%d", period.StartDate.Year())
	} else {
		period.Label = PeriodLabel(period.StartDate, period.EndDate)
	}
	return period, nil
}

// ParseMonth parses a YYYY-MM month. An empty month means the month of now.
// The returned time is the first day of the month at midnight UTC.
func ParseMonth(month string, now time.Time) (time.Time, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		today := truncateToDay(now)
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}

	parsed, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidMonthFormat,
			domainerror.ErrInvalidMonthFormat.Error(),
			domainerror.ErrInvalidMonthFormat,
		)
	}
	return parsed, nil
}

// MonthKey formats t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

// PeriodLabel generates a human-readable label for a date range.
// Formats:
// - Single month: "Mar 2024"
// - January 1st to December 31st: "2024"
// - Otherwise: "02 Mar 2024 - 15 Apr 2024"
func PeriodLabel(startDate, endDate time.Time) string {
	if startDate.Year() == endDate.Year() && startDate.Month() == endDate.Month() {
		return startDate.Format("Jan 2006")
	}
	if startDate.Year() == endDate.Year() && startDate.YearDay() == 1 &&
		endDate.Month() == time.December && endDate.Day() == 31 {
		return fmt.Sprintf("%d", startDate.Year())
	}
	return fmt.Sprintf("%s - %s", startDate.Format("02 Jan 2006"), endDate.Format("02 Jan 2006"))
}

func parseCustomRange(startDate, endDate string) (time.Time, time.Time, error) {
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)

	if startDate == "" {
		return time.Time{}, time.Time{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeMissingStartDate,
			"start_date is required for a custom period",
			domainerror.ErrMissingStartDate,
		)
	}
	if endDate == "" {
		return time.Time{}, time.Time{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeMissingEndDate,
			"end_date is required for a custom period",
			domainerror.ErrMissingEndDate,
		)
	}

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidDateFormat,
			"invalid start_date format, expected YYYY-MM-DD",
			domainerror.ErrInvalidDateFormat,
		)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidDateFormat,
			"invalid end_date format, expected YYYY-MM-DD",
			domainerror.ErrInvalidDateFormat,
		)
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must not be before start_date",
			domainerror.NewInvalidRangeError(start, end),
		)
	}

	return start, end, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
