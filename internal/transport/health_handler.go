package transport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"catalog-assistant/internal/middleware"
	"catalog-assistant/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	apiName    = "E-commerce Customer Support Chatbot API"
	apiVersion = "1.0.0"
)

// HealthChecker reports connection pool status; database.Service
// satisfies it.
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

// HealthHandler serves the root banner and the health probe.
type HealthHandler struct {
	db      HealthChecker
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db HealthChecker, catalog service.CatalogService, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers the root and health routes
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": apiName,
		"version": apiVersion,
		"status":  "running",
	})
}

// Health pings the database and counts the four catalog collections.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	pool := h.db.Health(r.Context())
	if pool["status"] != "up" {
		h.unhealthy(w, errors.New(pool["error"]))
		return
	}

	stats, err := h.catalog.Stats(r.Context())
	if err != nil {
		h.unhealthy(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"stats":     stats,
		"pool":      pool,
	})
}

func (h *HealthHandler) unhealthy(w http.ResponseWriter, err error) {
	h.logger.Error("Health check failed", zap.Error(err))
	middleware.RespondWithJSON(w, http.StatusInternalServerError, map[string]string{
		"status":   "unhealthy",
		"database": "disconnected",
		"error":    err.Error(),
	})
}

// NotFound answers every unknown route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithMessage(w, http.StatusNotFound, "Route not found")
}
