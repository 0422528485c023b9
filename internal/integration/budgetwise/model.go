package budgetwise

import (
	"github.com/shopspring/decimal"

	"github.com/budgetwise/statistics/internal/domain/entity"
)

// CategoryPayload is the nested category of an expense.
type CategoryPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ExpensePayload is an expense as serialized by the backend.
type ExpensePayload struct {
	ID          int64               `json:"id"`
	UserID      int64               `json:"user_id"`
	Amount      decimal.Decimal     `json:"amount"`
	Description string              `json:"description"`
	CategoryID  *int64              `json:"category_id"`
	Category    *CategoryPayload    `json:"category"`
	Type        string              `json:"type"`
	Date        entity.CalendarDate `json:"date"`
}

// ToEntity converts the payload to a domain expense.
func (p *ExpensePayload) ToEntity() *entity.Expense {
	expense := &entity.Expense{
		ID:          p.ID,
		UserID:      p.UserID,
		Amount:      p.Amount,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Type:        entity.ExpenseType(p.Type),
		Date:        p.Date,
	}
	if p.Category != nil {
		expense.CategoryName = p.Category.Name
		if expense.CategoryID == nil {
			id := p.Category.ID
			expense.CategoryID = &id
		}
	}
	return expense
}

// RevenuePayload is a revenue as serialized by the backend.
type RevenuePayload struct {
	ID     int64               `json:"id"`
	UserID int64               `json:"user_id"`
	Amount decimal.Decimal     `json:"amount"`
	Source string              `json:"source"`
	Date   entity.CalendarDate `json:"date"`
}

// ToEntity converts the payload to a domain revenue.
func (p *RevenuePayload) ToEntity() *entity.Revenue {
	return &entity.Revenue{
		ID:     p.ID,
		UserID: p.UserID,
		Amount: p.Amount,
		Source: p.Source,
		Date:   p.Date,
	}
}

// BudgetPayload is a monthly budget as serialized by the backend.
type BudgetPayload struct {
	ID     int64           `json:"id"`
	UserID int64           `json:"user_id"`
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// ToEntity converts the payload to a domain budget.
func (p *BudgetPayload) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:     p.ID,
		UserID: p.UserID,
		Month:  p.Month,
		Amount: p.Amount,
	}
}

type errorPayload struct {
	Detail any `json:"detail"`
}
