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

const categoryColumns = `id, user_id, name, icon, type, is_default, created_at`

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Icon,
		&c.Type,
		&c.IsDefault,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func insertCategory(ctx context.Context, q Querier, c *models.Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, icon, type, is_default)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	return q.QueryRow(ctx, query,
		c.ID,
		c.UserID,
		c.Name,
		c.Icon,
		c.Type,
		c.IsDefault,
	).Scan(&c.CreatedAt)
}

func CreateCategory(ctx context.Context, q Querier, c *models.Category) error {
	if err := insertCategory(ctx, q, c); err != nil {
		if isUniqueViolation(err) {
			return apperr.New(http.StatusBadRequest, "category already exists")
		}
		return errors.Wrap(err, "create category")
	}
	return nil
}

// GetCategoryForUser is the single resolver for cross-entity category
// references. Every call site that attaches a category to another record goes
// through here, so a reference can never escape its owner's scope.
func GetCategoryForUser(ctx context.Context, q Querier, userID, categoryID string) (*models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = $1 AND user_id = $2 AND NOT is_deleted
	`
	c, err := scanCategory(q.QueryRow(ctx, query, categoryID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrCategoryNotFound
		}
		return nil, errors.Wrap(err, "get category")
	}
	return c, nil
}

// FindDefaultCategory returns the owner's permanent cascade target for the
// given type.
func FindDefaultCategory(ctx context.Context, q Querier, userID, categoryType string) (*models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1 AND type = $2 AND is_default AND NOT is_deleted
	`
	c, err := scanCategory(q.QueryRow(ctx, query, userID, categoryType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrMissingDefault
		}
		return nil, errors.Wrap(err, "find default category")
	}
	return c, nil
}

func ListCategories(ctx context.Context, q Querier, userID string) ([]models.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1 AND NOT is_deleted
		ORDER BY is_default DESC, created_at ASC
	`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, errors.Wrap(err, "list categories")
		}
		categories = append(categories, *c)
	}
	return categories, errors.Wrap(rows.Err(), "list categories")
}

// UpdateCategory applies a partial rename. Transaction snapshots are left
// untouched so history keeps displaying the name it was recorded under.
// A type flip would leave referencing transactions disagreeing with their
// category's type, so it is only allowed while nothing references the
// category, and never on a default.
func UpdateCategory(ctx context.Context, q Querier, userID, categoryID string, req models.UpdateCategoryRequest) (*models.Category, error) {
	if req.Type != nil {
		existing, err := GetCategoryForUser(ctx, q, userID, categoryID)
		if err != nil {
			if errors.Is(err, apperr.ErrCategoryNotFound) {
				return nil, apperr.New(http.StatusNotFound, "category not found")
			}
			return nil, err
		}
		if *req.Type != existing.Type {
			if existing.IsDefault {
				return nil, apperr.New(http.StatusBadRequest, "cannot change the type of a default category")
			}
			var refs int
			count := `SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND category_id = $2`
			if err := q.QueryRow(ctx, count, userID, categoryID).Scan(&refs); err != nil {
				return nil, errors.Wrap(err, "count category transactions")
			}
			if refs > 0 {
				return nil, apperr.New(http.StatusBadRequest, "cannot change the type of a category with transactions")
			}
		}
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Icon != nil {
		fields["icon"] = *req.Icon
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}

	sqlStr, args, err := psql.Update("categories").
		SetMap(fields).
		Where(map[string]interface{}{"id": categoryID, "user_id": userID, "is_deleted": false}).
		Suffix("RETURNING " + categoryColumns).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build update category")
	}

	c, err := scanCategory(q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(http.StatusNotFound, "category not found")
		}
		if isUniqueViolation(err) {
			return nil, apperr.New(http.StatusBadRequest, "category already exists")
		}
		return nil, errors.Wrap(err, "update category")
	}
	return c, nil
}

// DeleteCategoryCascade repoints every transaction that references the
// category to the owner's same-type default, then soft-deletes the category.
// Both steps run inside one database transaction, so a concurrent read can
// never observe a transaction pointing at a deleted category.
func DeleteCategoryCascade(ctx context.Context, db TxBeginner, userID, categoryID string) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "delete category")
	}
	defer tx.Rollback(ctx)

	category, err := GetCategoryForUser(ctx, tx, userID, categoryID)
	if err != nil {
		if errors.Is(err, apperr.ErrCategoryNotFound) {
			return apperr.New(http.StatusNotFound, "category not found")
		}
		return err
	}

	if category.IsDefault {
		return apperr.ErrProtectedCategory
	}

	fallback, err := FindDefaultCategory(ctx, tx, userID, category.Type)
	if err != nil {
		return err
	}

	// Repoint before delete; the order is load-bearing.
	repoint := `
		UPDATE transactions
		SET category_id = $1, category_name = $2, category_icon = $3
		WHERE user_id = $4 AND category_id = $5
	`
	if _, err := tx.Exec(ctx, repoint, fallback.ID, fallback.Name, fallback.Icon, userID, categoryID); err != nil {
		return errors.Wrap(err, "reassign transactions")
	}

	softDelete := `
		UPDATE categories
		SET is_deleted = TRUE, deleted_at = $1
		WHERE id = $2 AND user_id = $3
	`
	if _, err := tx.Exec(ctx, softDelete, time.Now(), categoryID, userID); err != nil {
		return errors.Wrap(err, "soft delete category")
	}

	return errors.Wrap(tx.Commit(ctx), "delete category")
}
