package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

func serve(t *testing.T, h *HealthHandler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	h.RegisterRoutes(router)

	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRoot(t *testing.T) {
	rr := serve(t, NewHealthHandler("test-service", "1.0.0", nil), http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Hello World - Items API with PostgreSQL"}`, rr.Body.String())
}

func TestReadiness(t *testing.T) {
	t.Run("connected when ping succeeds", func(t *testing.T) {
		rr := serve(t, NewHealthHandler("test-service", "1.0.0", fakePinger{}), http.MethodGet, "/health")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"healthy","database":"connected"}`, rr.Body.String())
	})

	t.Run("unavailable when ping fails", func(t *testing.T) {
		rr := serve(t, NewHealthHandler("test-service", "1.0.0", fakePinger{err: errors.New("refused")}), http.MethodGet, "/health")

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.JSONEq(t, `{"status":"unhealthy","database":"disconnected"}`, rr.Body.String())
	})

	t.Run("disabled without a store", func(t *testing.T) {
		rr := serve(t, NewHealthHandler("test-service", "1.0.0", nil), http.MethodGet, "/health")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"healthy","database":"disabled"}`, rr.Body.String())
	})
}

func TestLiveness(t *testing.T) {
	rr := serve(t, NewHealthHandler("test-service", "1.0.0", fakePinger{err: errors.New("down")}), http.MethodGet, "/healthz")

	require.Equal(t, http.StatusOK, rr.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response.Status)
	assert.Equal(t, "test-service", response.Service)
	assert.Equal(t, "1.0.0", response.Version)
	assert.False(t, response.Timestamp.IsZero())
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	rr := serve(t, NewHealthHandler("test-service", "1.0.0", nil), http.MethodPost, "/health")

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
