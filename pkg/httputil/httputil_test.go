package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/wherehaus/addressbook/pkg/errors"
	"github.com/wherehaus/addressbook/pkg/validator"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteSuccess(rec, http.StatusCreated, "address created", map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeBody(t, rec)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, "address created", resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestWriteError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/addresses/x", nil)

	WriteError(rec, req, apperrors.NotFound("address", "x"), discardLogger())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Message, "x")
}

func TestWriteError_ValidationSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/addresses", nil)

	WriteError(rec, req, apperrors.Validation("latitude out of range"), discardLogger())

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "latitude out of range", resp.Message)
}

func TestWriteError_UnknownErrorIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/addresses", nil)

	WriteError(rec, req, errors.New("storage exploded"), discardLogger())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, StatusError, resp.Status)
	// Internal details are not leaked to the caller.
	assert.NotContains(t, resp.Message, "exploded")
}

func TestWriteValidationError_FieldDetails(t *testing.T) {
	type req struct {
		Street string `validate:"required"`
	}

	err := validator.Validate(req{})
	require.Error(t, err)

	rec := httptest.NewRecorder()
	WriteValidationError(rec, err)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, StatusError, resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	fields, ok := data["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "Street")
}

func TestWriteValidationError_PlainError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteValidationError(rec, errors.New("decode request body: unexpected EOF"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Message, "decode request body")
}
