// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/shopspring/decimal"
)

// RecordKind discriminates the two kinds of transaction records.
type RecordKind string

const (
	RecordKindExpense RecordKind = "expense"
	RecordKindRevenue RecordKind = "revenue"
)

// Record is a tagged union over Expense and Revenue. Kind is set once when the
// record is built and selects which of the two pointers is populated.
type Record struct {
	Kind    RecordKind
	Expense *Expense
	Revenue *Revenue
}

// NewExpenseRecord wraps an expense in a Record.
func NewExpenseRecord(expense *Expense) Record {
	return Record{Kind: RecordKindExpense, Expense: expense}
}

// NewRevenueRecord wraps a revenue in a Record.
func NewRevenueRecord(revenue *Revenue) Record {
	return Record{Kind: RecordKindRevenue, Revenue: revenue}
}

// ID returns the identifier of the wrapped record.
func (r Record) ID() int64 {
	if r.Kind == RecordKindExpense {
		return r.Expense.ID
	}
	return r.Revenue.ID
}

// Amount returns the amount of the wrapped record.
func (r Record) Amount() decimal.Decimal {
	if r.Kind == RecordKindExpense {
		return r.Expense.Amount
	}
	return r.Revenue.Amount
}

// Date returns the date of the wrapped record.
func (r Record) Date() CalendarDate {
	if r.Kind == RecordKindExpense {
		return r.Expense.Date
	}
	return r.Revenue.Date
}

// Label returns the description of an expense or the source of a revenue.
func (r Record) Label() string {
	if r.Kind == RecordKindExpense {
		return r.Expense.Description
	}
	return r.Revenue.Source
}

// Records builds the tagged union list for the given expenses and revenues,
// expenses first, preserving input order within each kind.
func Records(expenses []*Expense, revenues []*Revenue) []Record {
	records := make([]Record, 0, len(expenses)+len(revenues))
	for _, e := range expenses {
		records = append(records, NewExpenseRecord(e))
	}
	for _, r := range revenues {
		records = append(records, NewRevenueRecord(r))
	}
	return records
}
