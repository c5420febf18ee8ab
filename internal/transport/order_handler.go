package transport

import (
	"errors"
	"net/http"
	"strconv"

	"catalog-assistant/internal/middleware"
	"catalog-assistant/internal/repository"
	"catalog-assistant/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderHandler serves order lookups.
type OrderHandler struct {
	orders service.OrderService
	logger *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/orders/{orderId}", h.GetOrder)
}

// GetOrder returns an order with its items. An id that is not a number
// cannot name an order, so it is reported as not found.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		middleware.RespondWithMessage(w, http.StatusNotFound, "Order not found")
		return
	}

	detail, err := h.orders.GetOrderDetail(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithMessage(w, http.StatusNotFound, "Order not found")
			return
		}

		h.logger.Error("Order lookup failed", zap.Int64("order_id", orderID), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err)
		return
	}

	middleware.RespondWithData(w, detail)
}
