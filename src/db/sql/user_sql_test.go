package db

import (
	"context"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartfinance-server/src/apperr"
)

func TestGetUserByEmail_UnknownEmailIsInvalidCredentials(t *testing.T) {
	q := &fakeQuerier{rows: []pgx.Row{errRow(pgx.ErrNoRows)}}

	_, err := GetUserByEmail(context.Background(), q, "nobody@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))
}

func TestGetUserByEmail_StoreFailureStaysInternal(t *testing.T) {
	q := &fakeQuerier{rows: []pgx.Row{errRow(errors.New("connection reset"))}}

	_, err := GetUserByEmail(context.Background(), q, "user@example.com")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperr.StatusOf(err))
}

func TestGetUserByID_UnknownIDIsNotFound(t *testing.T) {
	q := &fakeQuerier{rows: []pgx.Row{errRow(pgx.ErrNoRows)}}

	_, err := GetUserByID(context.Background(), q, "u-missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}
