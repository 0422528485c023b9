// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/shopspring/decimal"
)

// Revenue is a single incoming transaction as returned by a record source.
type Revenue struct {
	ID     int64
	UserID int64
	Amount decimal.Decimal
	Source string
	Date   CalendarDate
}
