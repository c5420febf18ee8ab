package transport

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-assistant/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	router := newTestRouter(NewHealthHandler(healthStub{"status": "up"}, &mockCatalogService{}, nopLogger))

	w := serve(t, router, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestHealthy(t *testing.T) {
	catalog := &mockCatalogService{stats: &domain.CollectionStats{Products: 3, Orders: 2, OrderItems: 5, InventoryItems: 9}}
	router := newTestRouter(NewHealthHandler(healthStub{"status": "up"}, catalog, nopLogger))

	w := serve(t, router, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])

	_, err := time.Parse(time.RFC3339Nano, body["timestamp"].(string))
	assert.NoError(t, err)

	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(5), stats["orderItems"])
	assert.Equal(t, float64(9), stats["inventoryItems"])
}

func TestUnhealthyWhenDatabaseDown(t *testing.T) {
	router := newTestRouter(NewHealthHandler(
		healthStub{"status": "down", "error": "db down: connection refused"},
		&mockCatalogService{},
		nopLogger,
	))

	w := serve(t, router, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "disconnected", body["database"])
	assert.Equal(t, "db down: connection refused", body["error"])
}

func TestUnhealthyWhenCountsFail(t *testing.T) {
	router := newTestRouter(NewHealthHandler(
		healthStub{"status": "up"},
		&mockCatalogService{err: errors.New("relation \"products\" does not exist")},
		nopLogger,
	))

	w := serve(t, router, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "unhealthy", decodeJSON(t, w)["status"])
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(NewHealthHandler(healthStub{"status": "up"}, &mockCatalogService{}, nopLogger))

	w := serve(t, router, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["message"])
}
