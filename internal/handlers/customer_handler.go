package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/order-desk/internal/models"
	"github.com/Lixing-Zhang/order-desk/internal/service"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
	log             *slog.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService, log *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		log:             log,
	}
}

// CreateCustomer handles POST /customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CustomerRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode customer request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	customer, err := h.customerService.CreateCustomer(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired), errors.Is(err, service.ErrEmailRequired):
			h.log.Info("rejected customer", "reason", err)
			WriteError(w, http.StatusUnprocessableEntity, err.Error(), h.log)
		default:
			h.log.Error("failed to create customer", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, customer, h.log)
	h.log.Info("customer created", "customer_id", customer.ID)
}

// ListCustomers handles GET /customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerService.ListCustomers(r.Context())
	if err != nil {
		h.log.Error("failed to list customers", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, customers, h.log)
}
