package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xteonlyone/portfolio/backend/internal/services"
)

func TestFromService_HTTPErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{services.ErrUnauthenticated, http.StatusUnauthorized},
		{services.ErrForbidden, http.StatusForbidden},
		{services.ErrNotFound, http.StatusNotFound},
		{services.ErrEmptyContent, http.StatusBadRequest},
		{services.ErrInvalidInput, http.StatusBadRequest},
		{services.ErrConflict, http.StatusConflict},
		{services.ErrNoRecipient, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", services.ErrNotFound), http.StatusNotFound},
	}

	e := echo.New()
	for _, tt := range tests {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		var he *echo.HTTPError
		require.ErrorAs(t, fromService(c, tt.err), &he, tt.err.Error())
		assert.Equal(t, tt.code, he.Code, tt.err.Error())
	}
}

func TestFromService_InternalErrors(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, fromService(c, &services.ActionError{Message: "Failed to like", Err: errors.New("db down")}))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Failed to like"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, fromService(c, errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Something went wrong"}`, rec.Body.String())
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, success(c, http.StatusCreated, echo.Map{"liked": true}))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"liked":true}}`, rec.Body.String())
}
