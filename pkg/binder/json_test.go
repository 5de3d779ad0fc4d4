package binder_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traveltinder/backend/pkg/binder"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"ann@example.com","password":"Secret123"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")

		var got loginRequest
		require.NoError(t, binder.JSON()(req, &got))
		assert.Equal(t, loginRequest{Email: "ann@example.com", Password: "Secret123"}, got)
	})

	t.Run("unknown fields are ignored", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"ann@example.com","device":"ios"}`))
		req.Header.Set("Content-Type", "application/json")

		var got loginRequest
		require.NoError(t, binder.JSON()(req, &got))
		assert.Equal(t, "ann@example.com", got.Email)
	})

	t.Run("empty body leaves zero value", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)

		var got loginRequest
		require.NoError(t, binder.JSON()(req, &got))
		assert.Equal(t, loginRequest{}, got)
	})

	t.Run("missing content type is treated as JSON", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"ann@example.com"}`))

		var got loginRequest
		require.NoError(t, binder.JSON()(req, &got))
		assert.Equal(t, "ann@example.com", got.Email)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
		req.Header.Set("Content-Type", "application/json")

		var got loginRequest
		assert.ErrorIs(t, binder.JSON()(req, &got), binder.ErrFailedToParseJSON)
	})

	t.Run("wrong type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":42}`))
		req.Header.Set("Content-Type", "application/json")

		var got loginRequest
		assert.ErrorIs(t, binder.JSON()(req, &got), binder.ErrFailedToParseJSON)
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a"}{"email":"b"}`))
		req.Header.Set("Content-Type", "application/json")

		var got loginRequest
		assert.ErrorIs(t, binder.JSON()(req, &got), binder.ErrFailedToParseJSON)
	})

	t.Run("form content type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`email=ann@example.com`))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got loginRequest
		assert.ErrorIs(t, binder.JSON()(req, &got), binder.ErrUnsupportedMediaType)
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()
		body := `{"email":"` + strings.Repeat("a", 64) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")

		var got loginRequest
		assert.ErrorIs(t, binder.JSONWithLimit(32)(req, &got), binder.ErrBodyTooLarge)
	})
}
