package models

import "time"

// Budget is an informational monthly cap for a category. It is never enforced
// against transaction writes.
type Budget struct {
	ID         string    `json:"_id"`
	UserID     string    `json:"userId"`
	CategoryID string    `json:"categoryId"`
	Limit      float64   `json:"limit"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CreateBudgetRequest struct {
	CategoryID string   `json:"categoryId"`
	Limit      *float64 `json:"limit"`
	Month      int      `json:"month"`
	Year       int      `json:"year"`
}

type UpdateBudgetRequest struct {
	CategoryID *string  `json:"categoryId"`
	Limit      *float64 `json:"limit"`
	Month      *int     `json:"month"`
	Year       *int     `json:"year"`
}
