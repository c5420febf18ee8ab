package transport

import (
	"errors"
	"net/http"
	"net/url"

	"catalog-assistant/internal/middleware"
	"catalog-assistant/internal/repository"
	"catalog-assistant/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler serves the catalog queries.
type ProductHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/top-selling", h.TopSelling)
		r.Get("/top-selling/{limit}", h.TopSelling)
		r.Get("/stock/{productName}", h.Stock)
		r.Get("/search", h.Search)
	})
}

// TopSelling lists the best sellers. The limit comes from the path when
// present.
func (h *ProductHandler) TopSelling(w http.ResponseWriter, r *http.Request) {
	limit := service.ParseLimit(chi.URLParam(r, "limit"), service.DefaultTopSellingLimit)

	products, err := h.catalog.TopSelling(r.Context(), limit)
	if err != nil {
		h.logger.Error("Top-selling query failed", zap.Int("limit", limit), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err)
		return
	}

	middleware.RespondWithList(w, products)
}

// Stock reports inventory for every product whose name contains the path
// segment. The segment is decoded exactly once.
func (h *ProductHandler) Stock(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "productName")
	// chi routes on RawPath when it is set, leaving the param escaped.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}

	stock, err := h.catalog.ProductStock(r.Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithMessage(w, http.StatusNotFound, "Product not found")
			return
		}

		h.logger.Error("Stock query failed", zap.String("product_name", name), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err)
		return
	}

	middleware.RespondWithList(w, stock)
}

// Search filters products by the q, category and brand query parameters.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := repository.SearchParams{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
		Limit:    service.ParseLimit(q.Get("limit"), service.DefaultSearchLimit),
	}

	products, err := h.catalog.SearchProducts(r.Context(), params)
	if err != nil {
		h.logger.Error("Product search failed", zap.Any("params", params), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err)
		return
	}

	middleware.RespondWithList(w, products)
}
