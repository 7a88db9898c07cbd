package models

import "time"

// Transaction carries a snapshot of the category name and icon taken at write
// time, so renaming a category later never rewrites history.
type Transaction struct {
	ID           string    `json:"_id"`
	UserID       string    `json:"userId"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	CategoryIcon string    `json:"categoryIcon"`
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreateTransactionRequest struct {
	Amount      *float64 `json:"amount"`
	Type        string   `json:"type"`
	CategoryID  string   `json:"categoryId"`
	Description string   `json:"description"`
}

type UpdateTransactionRequest struct {
	Amount      *float64 `json:"amount"`
	Type        *string  `json:"type"`
	CategoryID  *string  `json:"categoryId"`
	Description *string  `json:"description"`
}

// HasUpdates reports whether the partial update carries at least one field.
func (r UpdateTransactionRequest) HasUpdates() bool {
	return r.Amount != nil || r.Type != nil || r.CategoryID != nil || r.Description != nil
}
