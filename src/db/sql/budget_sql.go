package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"smartfinance-server/src/apperr"
	"smartfinance-server/src/models"
)

const budgetColumns = `id, user_id, category_id, month_limit, month, year, created_at, updated_at`

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var b models.Budget
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.CategoryID,
		&b.Limit,
		&b.Month,
		&b.Year,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func CreateBudget(ctx context.Context, q Querier, b *models.Budget) error {
	query := `
		INSERT INTO budgets (id, user_id, category_id, month_limit, month, year)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		b.ID,
		b.UserID,
		b.CategoryID,
		b.Limit,
		b.Month,
		b.Year,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	return errors.Wrap(err, "create budget")
}

func GetBudgetByID(ctx context.Context, q Querier, userID, budgetID string) (*models.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE id = $1 AND user_id = $2
	`
	b, err := scanBudget(q.QueryRow(ctx, query, budgetID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(http.StatusNotFound, "budget not found")
		}
		return nil, errors.Wrap(err, "get budget")
	}
	return b, nil
}

func GetAllBudgetsForUser(ctx context.Context, q Querier, userID string) ([]models.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE user_id = $1
		ORDER BY year DESC, month DESC, created_at DESC
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list budgets")
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, errors.Wrap(err, "list budgets")
		}
		budgets = append(budgets, *b)
	}
	return budgets, errors.Wrap(rows.Err(), "list budgets")
}

func UpdateBudget(ctx context.Context, q Querier, userID, budgetID string, fields map[string]interface{}) (*models.Budget, error) {
	fields["updated_at"] = time.Now()
	sqlStr, args, err := psql.Update("budgets").
		SetMap(fields).
		Where(map[string]interface{}{"id": budgetID, "user_id": userID}).
		Suffix("RETURNING " + budgetColumns).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build update budget")
	}

	b, err := scanBudget(q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(http.StatusNotFound, "budget not found")
		}
		return nil, errors.Wrap(err, "update budget")
	}
	return b, nil
}

func DeleteBudget(ctx context.Context, q Querier, userID, budgetID string) error {
	query := `DELETE FROM budgets WHERE id = $1 AND user_id = $2`
	cmd, err := q.Exec(ctx, query, budgetID, userID)
	if err != nil {
		return errors.Wrap(err, "delete budget")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.New(http.StatusNotFound, "budget not found")
	}
	return nil
}
