// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/shopspring/decimal"
)

// Budget is the spending limit a user set for one calendar month.
type Budget struct {
	ID     int64
	UserID int64
	Month  string // YYYY-MM
	Amount decimal.Decimal
}
