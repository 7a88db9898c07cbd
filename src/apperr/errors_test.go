package apperr

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestWrite_SentinelErrors(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{ErrMissingFields, http.StatusBadRequest, "missing fields"},
		{ErrInvalidAmount, http.StatusBadRequest, "invalid amount"},
		{ErrCategoryNotFound, http.StatusBadRequest, "invalid categoryId"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{ErrProtectedCategory, http.StatusBadRequest, "cannot delete a default category"},
		{ErrMissingDefault, http.StatusInternalServerError, "missing default category"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		Write(rec, tc.err)

		assert.Equal(t, tc.status, rec.Code, tc.message)
		assert.Equal(t, tc.message, decodeBody(t, rec)["message"])
	}
}

func TestWrite_WrappedErrorKeepsMapping(t *testing.T) {
	wrapped := errors.Wrap(ErrProtectedCategory, "delete category")

	rec := httptest.NewRecorder()
	Write(rec, wrapped)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "cannot delete a default category", decodeBody(t, rec)["message"])
}

func TestWrite_UnknownErrorIsInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, errors.New("pool exhausted"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeBody(t, rec)["message"])
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(New(http.StatusNotFound, "transaction not found")))
	assert.Equal(t, http.StatusBadRequest, StatusOf(errors.Wrap(ErrInvalidType, "create transaction")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}
