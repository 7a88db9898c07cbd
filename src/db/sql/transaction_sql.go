package db

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"smartfinance-server/src/apperr"
	"smartfinance-server/src/models"
)

const transactionColumns = `id, user_id, category_id, category_name, category_icon, type, amount, description, created_at`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.CategoryID,
		&t.CategoryName,
		&t.CategoryIcon,
		&t.Type,
		&t.Amount,
		&t.Description,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func CreateTransaction(ctx context.Context, q Querier, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, category_id, category_name, category_icon, type, amount, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := q.QueryRow(ctx, query,
		t.ID,
		t.UserID,
		t.CategoryID,
		t.CategoryName,
		t.CategoryIcon,
		t.Type,
		t.Amount,
		t.Description,
	).Scan(&t.CreatedAt)
	return errors.Wrap(err, "create transaction")
}

func GetTransactionForUser(ctx context.Context, q Querier, userID, transactionID string) (*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1 AND user_id = $2
	`
	t, err := scanTransaction(q.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(http.StatusNotFound, "transaction not found")
		}
		return nil, errors.Wrap(err, "get transaction")
	}
	return t, nil
}

func ListTransactions(ctx context.Context, q Querier, userID string) ([]models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list transactions")
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, errors.Wrap(err, "list transactions")
		}
		transactions = append(transactions, *t)
	}
	return transactions, errors.Wrap(rows.Err(), "list transactions")
}

// UpdateTransactionFields applies the already-validated partial update.
// Callers are responsible for re-resolving the category snapshot when the
// category changes; this function only writes.
func UpdateTransactionFields(ctx context.Context, q Querier, userID, transactionID string, fields map[string]interface{}) (*models.Transaction, error) {
	sqlStr, args, err := psql.Update("transactions").
		SetMap(fields).
		Where(map[string]interface{}{"id": transactionID, "user_id": userID}).
		Suffix("RETURNING " + transactionColumns).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build update transaction")
	}

	t, err := scanTransaction(q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(http.StatusNotFound, "transaction not found")
		}
		return nil, errors.Wrap(err, "update transaction")
	}
	return t, nil
}

func DeleteTransaction(ctx context.Context, q Querier, userID, transactionID string) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	cmd, err := q.Exec(ctx, query, transactionID, userID)
	if err != nil {
		return errors.Wrap(err, "delete transaction")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.New(http.StatusNotFound, "transaction not found")
	}
	return nil
}
