// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/shopspring/decimal"
)

// ExpenseType classifies how an expense recurs.
type ExpenseType string

const (
	ExpenseTypeFixed      ExpenseType = "fixed"
	ExpenseTypeVariable   ExpenseType = "variable"
	ExpenseTypeOccasional ExpenseType = "occasional"
)

// IsValid reports whether the type is one of the known expense types.
func (t ExpenseType) IsValid() bool {
	switch t {
	case ExpenseTypeFixed, ExpenseTypeVariable, ExpenseTypeOccasional:
		return true
	}
	return false
}

// Expense is a single outgoing transaction as returned by a record source.
// Expenses are immutable once fetched.
type Expense struct {
	ID           int64
	UserID       int64
	Amount       decimal.Decimal
	Description  string
	CategoryID   *int64 // Optional, nil means uncategorized
	CategoryName string // Denormalized from the category, may be empty
	Type         ExpenseType
	Date         CalendarDate
}

// HasCategory reports whether the expense references a category.
func (e *Expense) HasCategory() bool {
	return e.CategoryID != nil
}
