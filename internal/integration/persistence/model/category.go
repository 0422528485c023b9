// Package model defines database models for persistence layer.
package model

import (
	"github.com/budgetwise/statistics/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(100);uniqueIndex"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:   m.ID,
		Name: m.Name,
	}
}
