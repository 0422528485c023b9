// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetwise/statistics/internal/domain/entity"
)

// RevenueModel represents the revenues table in the database.
type RevenueModel struct {
	ID     int64           `gorm:"primaryKey"`
	UserID int64           `gorm:"index"`
	Amount decimal.Decimal `gorm:"type:float"`
	Source string          `gorm:"type:varchar(100)"`
	Date   *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for the RevenueModel.
func (RevenueModel) TableName() string {
	return "revenues"
}

// ToEntity converts a RevenueModel to a domain Revenue entity.
func (m *RevenueModel) ToEntity() *entity.Revenue {
	revenue := &entity.Revenue{
		ID:     m.ID,
		UserID: m.UserID,
		Amount: m.Amount,
		Source: m.Source,
	}
	if m.Date != nil {
		revenue.Date = entity.DateOf(*m.Date)
	}
	return revenue
}
