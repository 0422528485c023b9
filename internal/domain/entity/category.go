// Package entity defines the core business entities for the domain layer.
package entity

// Category groups expenses. Categories are shared across users in BudgetWise.
type Category struct {
	ID   int64
	Name string
}
