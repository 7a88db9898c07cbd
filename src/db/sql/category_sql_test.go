package db

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartfinance-server/src/apperr"
	"smartfinance-server/src/models"
)

func expenseCategory(id, name string) models.Category {
	return models.Category{
		ID:        id,
		UserID:    "u-1",
		Name:      name,
		Icon:      "Utensils",
		Type:      models.TypeExpense,
		CreatedAt: time.Now(),
	}
}

func TestDeleteCategoryCascade_RepointsBeforeSoftDelete(t *testing.T) {
	food := expenseCategory("c-food", "Food")
	fallback := expenseCategory("c-default", "Default")
	fallback.IsDefault = true

	tx := &fakeTx{fakeQuerier: fakeQuerier{
		rows: []pgx.Row{categoryRow(food), categoryRow(fallback)},
		execTags: []pgconn.CommandTag{
			pgconn.NewCommandTag("UPDATE 3"),
			pgconn.NewCommandTag("UPDATE 1"),
		},
	}}

	require.NoError(t, DeleteCategoryCascade(context.Background(), tx, "u-1", "c-food"))

	require.Len(t, tx.execSQL, 2)
	assert.Contains(t, tx.execSQL[0], "UPDATE transactions")
	assert.Contains(t, tx.execSQL[1], "is_deleted = TRUE")
	assert.True(t, tx.committed)
}

func TestDeleteCategoryCascade_ProtectsDefault(t *testing.T) {
	def := expenseCategory("c-default", "Default")
	def.IsDefault = true

	tx := &fakeTx{fakeQuerier: fakeQuerier{rows: []pgx.Row{categoryRow(def)}}}

	err := DeleteCategoryCascade(context.Background(), tx, "u-1", "c-default")
	assert.ErrorIs(t, err, apperr.ErrProtectedCategory)
	assert.Empty(t, tx.execSQL)
	assert.False(t, tx.committed)
}

func TestDeleteCategoryCascade_UnknownCategory(t *testing.T) {
	tx := &fakeTx{fakeQuerier: fakeQuerier{rows: []pgx.Row{errRow(pgx.ErrNoRows)}}}

	err := DeleteCategoryCascade(context.Background(), tx, "u-1", "c-missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
	assert.False(t, tx.committed)
}

func TestDeleteCategoryCascade_MissingDefaultAborts(t *testing.T) {
	food := expenseCategory("c-food", "Food")

	tx := &fakeTx{fakeQuerier: fakeQuerier{
		rows: []pgx.Row{categoryRow(food), errRow(pgx.ErrNoRows)},
	}}

	err := DeleteCategoryCascade(context.Background(), tx, "u-1", "c-food")
	assert.ErrorIs(t, err, apperr.ErrMissingDefault)
	assert.Empty(t, tx.execSQL)
	assert.False(t, tx.committed)
}

func TestUpdateCategory_RejectsTypeFlipWithTransactions(t *testing.T) {
	food := expenseCategory("c-food", "Food")
	income := models.TypeIncome

	q := &fakeQuerier{rows: []pgx.Row{categoryRow(food), countRow(2)}}

	_, err := UpdateCategory(context.Background(), q, "u-1", "c-food", models.UpdateCategoryRequest{Type: &income})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestUpdateCategory_RejectsTypeFlipOnDefault(t *testing.T) {
	def := expenseCategory("c-default", "Default")
	def.IsDefault = true
	income := models.TypeIncome

	q := &fakeQuerier{rows: []pgx.Row{categoryRow(def)}}

	_, err := UpdateCategory(context.Background(), q, "u-1", "c-default", models.UpdateCategoryRequest{Type: &income})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestUpdateCategory_AllowsTypeFlipWithoutTransactions(t *testing.T) {
	food := expenseCategory("c-food", "Food")
	income := models.TypeIncome
	updated := food
	updated.Type = income

	q := &fakeQuerier{rows: []pgx.Row{categoryRow(food), countRow(0), categoryRow(updated)}}

	c, err := UpdateCategory(context.Background(), q, "u-1", "c-food", models.UpdateCategoryRequest{Type: &income})
	require.NoError(t, err)
	assert.Equal(t, models.TypeIncome, c.Type)
}
