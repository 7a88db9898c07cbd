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

const savingGoalColumns = `id, user_id, name, target_amount, current_amount, deadline, created_at, updated_at`

func scanSavingGoal(row pgx.Row) (*models.SavingGoal, error) {
	var g models.SavingGoal
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Name,
		&g.TargetAmount,
		&g.CurrentAmount,
		&g.Deadline,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func CreateSavingGoal(ctx context.Context, q Querier, g *models.SavingGoal) error {
	query := `
		INSERT INTO saving_goals (id, user_id, name, target_amount, current_amount, deadline)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		g.ID,
		g.UserID,
		g.Name,
		g.TargetAmount,
		g.CurrentAmount,
		g.Deadline,
	).Scan(&g.CreatedAt, &g.UpdatedAt)
	return errors.Wrap(err, "create saving goal")
}

func GetAllSavingGoalsForUser(ctx context.Context, q Querier, userID string) ([]models.SavingGoal, error) {
	query := `
		SELECT ` + savingGoalColumns + `
		FROM saving_goals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list saving goals")
	}
	defer rows.Close()

	var goals []models.SavingGoal
	for rows.Next() {
		g, err := scanSavingGoal(rows)
		if err != nil {
			return nil, errors.Wrap(err, "list saving goals")
		}
		goals = append(goals, *g)
	}
	return goals, errors.Wrap(rows.Err(), "list saving goals")
}

func UpdateSavingGoal(ctx context.Context, q Querier, userID, goalID string, fields map[string]interface{}) (*models.SavingGoal, error) {
	fields["updated_at"] = time.Now()
	sqlStr, args, err := psql.Update("saving_goals").
		SetMap(fields).
		Where(map[string]interface{}{"id": goalID, "user_id": userID}).
		Suffix("RETURNING " + savingGoalColumns).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build update saving goal")
	}

	g, err := scanSavingGoal(q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(http.StatusNotFound, "saving goal not found")
		}
		return nil, errors.Wrap(err, "update saving goal")
	}
	return g, nil
}

func DeleteSavingGoal(ctx context.Context, q Querier, userID, goalID string) error {
	query := `DELETE FROM saving_goals WHERE id = $1 AND user_id = $2`
	cmd, err := q.Exec(ctx, query, goalID, userID)
	if err != nil {
		return errors.Wrap(err, "delete saving goal")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.New(http.StatusNotFound, "saving goal not found")
	}
	return nil
}
