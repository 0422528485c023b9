// Package statistics contains the statistics aggregation and its use cases.
package statistics

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise/statistics/internal/domain/entity"
	domainerror "github.com/budgetwise/statistics/internal/domain/error"
)

// UncategorizedID is the bucket key for expenses without a category.
const UncategorizedID = "uncategorized"

// UncategorizedName is the display name of the uncategorized bucket.
const UncategorizedName = "Uncategorized"

// UnspecifiedTypeID is the bucket key for expenses without a type.
const UnspecifiedTypeID = "unspecified"

const secondsPerDay = 24 * 60 * 60

var (
	hundred = decimal.NewFromInt(100)

	expenseTypeNames = map[entity.ExpenseType]string{
		entity.ExpenseTypeFixed:      "Fixed",
		entity.ExpenseTypeVariable:   "Variable",
		entity.ExpenseTypeOccasional: "Occasional",
	}
)

// PeriodSummary holds the headline totals of a period.
type PeriodSummary struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	NetBalance        decimal.Decimal `json:"net_balance"`
	AverageDailySpend decimal.Decimal `json:"average_daily_spend"`
}

// CategoryTotal is one bucket of a category or type breakdown.
type CategoryTotal struct {
	CategoryID       string          `json:"category_id"`
	CategoryName     string          `json:"category_name"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	TransactionCount int             `json:"transaction_count"`
	Percentage       int             `json:"percentage"`
}

// MonthlyBucket holds the totals of one calendar month.
type MonthlyBucket struct {
	MonthKey     string          `json:"month_key"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// MonthlySeries is the result of ByMonth: the buckets plus the records that could
// not be placed in one.
type MonthlySeries struct {
	Buckets []MonthlyBucket
	Skipped []*domainerror.MalformedRecordError
}

// SkippedCount returns the number of records excluded for a bad date.
func (s MonthlySeries) SkippedCount() int {
	return len(s.Skipped)
}

// Comparison is the two-bucket revenue versus expense summary.
type Comparison struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
}

// Summarize computes the totals of a period. The period bounds only drive the
// average daily spend; records are assumed to be filtered already.
//
// When endDate is before startDate the totals are still computed and returned
// together with an *InvalidRangeError, and AverageDailySpend is left at zero.
func Summarize(expenses []*entity.Expense, revenues []*entity.Revenue, startDate, endDate time.Time) (PeriodSummary, error) {
	totalExpenses := sumExpenses(expenses)
	totalRevenue := sumRevenues(revenues)

	summary := PeriodSummary{
		TotalRevenue:      totalRevenue,
		TotalExpenses:     totalExpenses,
		NetBalance:        totalRevenue.Sub(totalExpenses),
		AverageDailySpend: decimal.Zero,
	}

	if endDate.Before(startDate) {
		return summary, domainerror.NewInvalidRangeError(startDate, endDate)
	}

	days := PeriodDays(startDate, endDate)
	summary.AverageDailySpend = totalExpenses.Div(decimal.NewFromInt(int64(days))).Round(2)

	return summary, nil
}

// PeriodDays returns max(1, ceil(endDate - startDate)) in days.
func PeriodDays(startDate, endDate time.Time) int {
	seconds := endDate.Unix() - startDate.Unix()
	if seconds <= 0 {
		return 1
	}

	days := seconds / secondsPerDay
	if seconds%secondsPerDay != 0 {
		days++
	}
	return int(days)
}

// ByCategory groups expenses by category. Expenses without a category share the
// uncategorized bucket. Buckets are ranked by total descending, then by name and
// key ascending.
func ByCategory(expenses []*entity.Expense) []CategoryTotal {
	return groupExpenses(expenses, func(e *entity.Expense) (string, string) {
		if e.CategoryID == nil {
			return UncategorizedID, UncategorizedName
		}
		return strconv.FormatInt(*e.CategoryID, 10), e.CategoryName
	}, func(key string) string {
		return "Category " + key
	})
}

// ByType groups expenses by expense type with the same rules as ByCategory.
func ByType(expenses []*entity.Expense) []CategoryTotal {
	return groupExpenses(expenses, func(e *entity.Expense) (string, string) {
		if e.Type == "" {
			return UnspecifiedTypeID, "Unspecified"
		}
		if name, ok := expenseTypeNames[e.Type]; ok {
			return string(e.Type), name
		}
		return string(e.Type), string(e.Type)
	}, func(key string) string {
		return key
	})
}

// ByMonth accumulates expenses and revenues per calendar month. Records with a
// missing or malformed date are left out and listed in Skipped.
func ByMonth(expenses []*entity.Expense, revenues []*entity.Revenue) MonthlySeries {
	buckets := make(map[string]*MonthlyBucket)
	var skipped []*domainerror.MalformedRecordError

	bucketFor := func(key string) *MonthlyBucket {
		b, ok := buckets[key]
		if !ok {
			b = &MonthlyBucket{MonthKey: key, TotalExpense: decimal.Zero, TotalRevenue: decimal.Zero}
			buckets[key] = b
		}
		return b
	}

	for _, e := range expenses {
		if !e.Date.Valid() {
			skipped = append(skipped, domainerror.NewMalformedRecordError(
				string(entity.RecordKindExpense), e.ID, e.Date.Raw()))
			continue
		}
		b := bucketFor(e.Date.MonthKey())
		b.TotalExpense = b.TotalExpense.Add(e.Amount)
	}

	for _, r := range revenues {
		if !r.Date.Valid() {
			skipped = append(skipped, domainerror.NewMalformedRecordError(
				string(entity.RecordKindRevenue), r.ID, r.Date.Raw()))
			continue
		}
		b := bucketFor(r.Date.MonthKey())
		b.TotalRevenue = b.TotalRevenue.Add(r.Amount)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	series := MonthlySeries{
		Buckets: make([]MonthlyBucket, 0, len(keys)),
		Skipped: skipped,
	}
	for _, key := range keys {
		series.Buckets = append(series.Buckets, *buckets[key])
	}

	return series
}

// CompareRevenueExpense returns the revenue and expense totals side by side.
func CompareRevenueExpense(expenses []*entity.Expense, revenues []*entity.Revenue) Comparison {
	return Comparison{
		TotalRevenue:  sumRevenues(revenues),
		TotalExpenses: sumExpenses(expenses),
	}
}

// TopCategories returns at most n leading entries of a ranked breakdown.
func TopCategories(totals []CategoryTotal, n int) []CategoryTotal {
	if n < 0 || n >= len(totals) {
		return totals
	}
	return totals[:n]
}

// Percentage returns part/total as a whole percentage rounded half away from zero,
// or 0 when total is zero.
func Percentage(part, total decimal.Decimal) int {
	if total.IsZero() {
		return 0
	}
	return int(part.Mul(hundred).Div(total).Round(0).IntPart())
}

// groupExpenses buckets expenses by the key returned from keyOf. The first
// non-empty name seen for a key wins; fallbackName names buckets that never
// received one.
func groupExpenses(
	expenses []*entity.Expense,
	keyOf func(*entity.Expense) (key, name string),
	fallbackName func(key string) string,
) []CategoryTotal {
	if len(expenses) == 0 {
		return []CategoryTotal{}
	}

	index := make(map[string]int)
	totals := make([]CategoryTotal, 0)
	grandTotal := decimal.Zero

	for _, e := range expenses {
		key, name := keyOf(e)
		i, ok := index[key]
		if !ok {
			i = len(totals)
			index[key] = i
			totals = append(totals, CategoryTotal{CategoryID: key, TotalAmount: decimal.Zero})
		}
		if totals[i].CategoryName == "" {
			totals[i].CategoryName = name
		}
		totals[i].TotalAmount = totals[i].TotalAmount.Add(e.Amount)
		totals[i].TransactionCount++
		grandTotal = grandTotal.Add(e.Amount)
	}

	for i := range totals {
		if totals[i].CategoryName == "" {
			totals[i].CategoryName = fallbackName(totals[i].CategoryID)
		}
		totals[i].Percentage = Percentage(totals[i].TotalAmount, grandTotal)
	}

	sort.SliceStable(totals, func(a, b int) bool {
		if c := totals[a].TotalAmount.Cmp(totals[b].TotalAmount); c != 0 {
			return c > 0
		}
		if totals[a].CategoryName != totals[b].CategoryName {
			return totals[a].CategoryName < totals[b].CategoryName
		}
		return totals[a].CategoryID < totals[b].CategoryID
	})

	apportion(totals, grandTotal)

	return totals
}

// apportion keeps the rounded percentages of a ranked breakdown within one
// point of 100. When they drift further, single points are moved from the
// buckets whose rounding moved them furthest. On equal rounding error the
// higher-ranked bucket gains first and the lower-ranked bucket loses first.
func apportion(totals []CategoryTotal, grandTotal decimal.Decimal) {
	if grandTotal.IsZero() {
		return
	}

	sum := 0
	drift := make([]decimal.Decimal, len(totals))
	order := make([]int, len(totals))
	for i := range totals {
		exact := totals[i].TotalAmount.Mul(hundred).Div(grandTotal)
		drift[i] = decimal.NewFromInt(int64(totals[i].Percentage)).Sub(exact)
		sum += totals[i].Percentage
		order[i] = i
	}

	switch {
	case sum > 101:
		sort.SliceStable(order, func(a, b int) bool {
			if c := drift[order[a]].Cmp(drift[order[b]]); c != 0 {
				return c > 0
			}
			return order[a] > order[b]
		})
		for _, i := range order[:sum-101] {
			totals[i].Percentage--
		}
	case sum < 99:
		sort.SliceStable(order, func(a, b int) bool {
			if c := drift[order[a]].Cmp(drift[order[b]]); c != 0 {
				return c < 0
			}
			return order[a] < order[b]
		})
		for _, i := range order[:99-sum] {
			totals[i].Percentage++
		}
	}
}

func sumExpenses(expenses []*entity.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

func sumRevenues(revenues []*entity.Revenue) decimal.Decimal {
	total := decimal.Zero
	for _, r := range revenues {
		total = total.Add(r.Amount)
	}
	return total
}
