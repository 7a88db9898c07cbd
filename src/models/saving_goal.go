package models

import "time"

type SavingGoal struct {
	ID            string     `json:"_id"`
	UserID        string     `json:"userId"`
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"targetAmount"`
	CurrentAmount float64    `json:"currentAmount"`
	Deadline      *time.Time `json:"deadline"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type CreateSavingGoalRequest struct {
	Name          string     `json:"name"`
	TargetAmount  *float64   `json:"targetAmount"`
	CurrentAmount *float64   `json:"currentAmount"`
	Deadline      *time.Time `json:"deadline"`
}

type UpdateSavingGoalRequest struct {
	Name          *string    `json:"name"`
	TargetAmount  *float64   `json:"targetAmount"`
	CurrentAmount *float64   `json:"currentAmount"`
	Deadline      *time.Time `json:"deadline"`
}
