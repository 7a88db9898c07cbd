package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

func Connect(url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), url)
	if err != nil {
		return nil, errors.Wrap(err, "create pool")
	}

	// Test connection
	if err := pool.Ping(context.Background()); err != nil {
		return nil, errors.Wrap(err, "ping database")
	}

	return pool, nil
}
