package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"smartfinance-server/src/apperr"
	"smartfinance-server/src/models"
)

const userColumns = `id, email, name, password_hash, role, avatar, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.Role,
		&u.Avatar,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUserWithDefaults inserts the user together with their seeded category
// set in one transaction, so a registered user always has the default cascade
// targets for both types.
func CreateUserWithDefaults(ctx context.Context, pool *pgxpool.Pool, user *models.User, categories []models.Category) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "create user")
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO users (id, email, name, password_hash, role, avatar)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.Role,
		user.Avatar,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.New(http.StatusBadRequest, "email already exists")
		}
		return errors.Wrap(err, "create user")
	}

	for i := range categories {
		if err := insertCategory(ctx, tx, &categories[i]); err != nil {
			return errors.Wrap(err, "seed categories")
		}
	}

	return errors.Wrap(tx.Commit(ctx), "create user")
}

// GetUserByEmail maps an unknown email to the uniform credentials error, so a
// caller cannot tell it apart from a wrong password. Store failures stay
// internal errors.
func GetUserByEmail(ctx context.Context, q Querier, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "get user by email")
	}
	return u, nil
}

func GetUserByID(ctx context.Context, q Querier, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(http.StatusNotFound, "user not found")
		}
		return nil, errors.Wrap(err, "get user by id")
	}
	return u, nil
}

// UpdateUser applies a partial profile update. Unset fields are left alone.
func UpdateUser(ctx context.Context, q Querier, userID string, req models.UpdateUserRequest) (*models.User, error) {
	fields := map[string]interface{}{"updated_at": time.Now()}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}

	sqlStr, args, err := psql.Update("users").
		SetMap(fields).
		Where(map[string]interface{}{"id": userID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build update user")
	}

	u, err := scanUser(q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(http.StatusNotFound, "user not found")
		}
		return nil, errors.Wrap(err, "update user")
	}
	return u, nil
}

func UpdateUserPassword(ctx context.Context, q Querier, userID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	cmd, err := q.Exec(ctx, query, passwordHash, userID)
	if err != nil {
		return errors.Wrap(err, "update password")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.New(http.StatusNotFound, "user not found")
	}
	return nil
}
