package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lixing-Zhang/order-desk/internal/models"
	"github.com/Lixing-Zhang/order-desk/internal/pricing"
	"github.com/Lixing-Zhang/order-desk/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrCustomerRequired = errors.New("customer_id is required")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidStatus    = errors.New("status must be one of Pending, Paid, Shipped, Cancelled")
	ErrInvalidDiscount  = errors.New("discount_percent must be between 0 and 100")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrInvalidPrice     = errors.New("unit_price must not be negative")
)

// ItemError reports which item of an order failed validation
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// OrderService handles order business logic.
// It is the authoritative validator for discounts and quantities.
type OrderService struct {
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	now       func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(customers repository.CustomerRepository, orders repository.OrderRepository) *OrderService {
	return &OrderService{
		customers: customers,
		orders:    orders,
		now:       time.Now,
	}
}

// CreateOrder validates the request, prices it and stores the order
func (s *OrderService) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	if req.CustomerID == "" {
		return nil, ErrCustomerRequired
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if !validPercent(req.OrderDiscountPercent) {
		return nil, ErrInvalidDiscount
	}

	items := make([]models.OrderItem, len(req.Items))
	for i, item := range req.Items {
		if err := validateItem(item); err != nil {
			return nil, &ItemError{Index: i, Err: err}
		}
		items[i] = item
	}

	customer, err := s.customers.GetByID(ctx, req.CustomerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup customer: %w", err)
	}

	order := &models.Order{
		ID:                   uuid.NewString(),
		CustomerID:           customer.ID,
		CustomerName:         customer.Name,
		Status:               status,
		OrderDiscountPercent: req.OrderDiscountPercent,
		Items:                items,
		CreatedAt:            s.now().UTC(),
	}
	pricing.Apply(order)

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

// ListOrders returns all orders, newest first
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.List(ctx)
}

func validateItem(item models.OrderItem) error {
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if item.UnitPrice < 0 {
		return ErrInvalidPrice
	}
	if !validPercent(item.DiscountPercent) {
		return ErrInvalidDiscount
	}
	return nil
}

func validPercent(p float64) bool {
	return p >= 0 && p <= 100
}
