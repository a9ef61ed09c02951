package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/order-desk/internal/models"
	"github.com/Lixing-Zhang/order-desk/internal/service"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// CreateOrder handles POST /orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), req)
	if err != nil {
		var itemErr *service.ItemError

		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			h.log.Info("order for unknown customer", "customer_id", req.CustomerID)
			WriteError(w, http.StatusNotFound, "Customer not found", h.log)
		case errors.As(err, &itemErr),
			errors.Is(err, service.ErrCustomerRequired),
			errors.Is(err, service.ErrInvalidStatus),
			errors.Is(err, service.ErrInvalidDiscount):
			h.log.Info("rejected order", "reason", err)
			WriteError(w, http.StatusUnprocessableEntity, err.Error(), h.log)
		default:
			h.log.Error("failed to create order", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, order, h.log)
	h.log.Info("order created", "order_id", order.ID, "items_count", len(order.Items), "total", order.Total)
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		h.log.Error("failed to list orders", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, orders, h.log)
}
