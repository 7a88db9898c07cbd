package db

import (
	"github.com/google/uuid"

	"smartfinance-server/src/models"
)

// DefaultCategories is the starter set every new user receives. The two
// "Default" entries are permanent: they are the cascade targets when a
// user-created category of the same type is deleted.
func DefaultCategories(userID string) []models.Category {
	seed := []struct {
		name      string
		icon      string
		kind      string
		isDefault bool
	}{
		{"Default", "Tag", models.TypeExpense, true},
		{"Default", "DollarSign", models.TypeIncome, true},
		{"Food", "Utensils", models.TypeExpense, false},
		{"Transportation", "Car", models.TypeExpense, false},
		{"Entertainment", "Film", models.TypeExpense, false},
		{"Utilities", "Lightbulb", models.TypeExpense, false},
		{"Healthcare", "HeartPulse", models.TypeExpense, false},
		{"Shopping", "ShoppingBag", models.TypeExpense, false},
		{"Salary", "Briefcase", models.TypeIncome, false},
		{"Freelance", "Laptop", models.TypeIncome, false},
	}

	categories := make([]models.Category, 0, len(seed))
	for _, s := range seed {
		categories = append(categories, models.Category{
			ID:        uuid.NewString(),
			UserID:    userID,
			Name:      s.name,
			Icon:      s.icon,
			Type:      s.kind,
			IsDefault: s.isDefault,
		})
	}
	return categories
}
