package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	e := echo.New()
	middleware := RateLimiterWithConfig(100, 5)

	handler := middleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "10.0.0.1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiterBlocksAboveBurst(t *testing.T) {
	e := echo.New()
	middleware := RateLimiterWithConfig(1, 2)

	handler := middleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	var lastCode int
	var lastBody []byte
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "10.0.0.2")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, handler(c))
		lastCode = rec.Code
		lastBody = rec.Body.Bytes()
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)

	var errorResp errors.ErrorResponse
	assert.NoError(t, json.Unmarshal(lastBody, &errorResp))
	assert.Equal(t, "SYSTEM_004", errorResp.Error.Code)
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	e := echo.New()
	middleware := RateLimiterWithConfig(1, 1)

	handler := middleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Exhaust the first client's allowance
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Real-IP", "10.0.0.3")
		rec := httptest.NewRecorder()
		assert.NoError(t, handler(e.NewContext(req, rec)))
	}

	// A different client is unaffected
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "10.0.0.4")
	rec := httptest.NewRecorder()

	assert.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
