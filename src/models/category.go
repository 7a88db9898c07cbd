package models

import "time"

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// ValidType reports whether t is one of the two supported entry types.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

type Category struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Type      string    `json:"type"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	Type string `json:"type"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name"`
	Icon *string `json:"icon"`
	Type *string `json:"type"`
}
