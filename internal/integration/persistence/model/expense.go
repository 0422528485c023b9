// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise/statistics/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID          int64           `gorm:"primaryKey"`
	UserID      int64           `gorm:"index"`
	Amount      decimal.Decimal `gorm:"type:float"`
	Description string          `gorm:"type:varchar(255)"`
	CategoryID  *int64
	Category    *CategoryModel `gorm:"foreignKey:CategoryID"`
	Date        *time.Time     `gorm:"type:date"`
	Type        string         `gorm:"type:varchar(50)"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	expense := &entity.Expense{
		ID:          m.ID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		Description: m.Description,
		CategoryID:  m.CategoryID,
		Type:        entity.ExpenseType(m.Type),
	}
	if m.Category != nil {
		expense.CategoryName = m.Category.Name
	}
	if m.Date != nil {
		expense.Date = entity.DateOf(*m.Date)
	}
	return expense
}
