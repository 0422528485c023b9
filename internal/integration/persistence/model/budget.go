// Package model defines database models for persistence layer.
package model

import (
	"github.com/shopspring/decimal"

	"github.com/budgetwise/statistics/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID     int64           `gorm:"primaryKey"`
	UserID int64           `gorm:"index"`
	Month  string          `gorm:"type:varchar(7)"`
	Amount decimal.Decimal `gorm:"type:float"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:     m.ID,
		UserID: m.UserID,
		Month:  m.Month,
		Amount: m.Amount,
	}
}
