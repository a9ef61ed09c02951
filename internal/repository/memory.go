package repository

import (
	"context"
	"sync"

	"github.com/Lixing-Zhang/order-desk/internal/models"
)

// InMemoryCustomerRepository implements CustomerRepository with in-memory storage
type InMemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers []models.Customer
	byID      map[string]int
}

// NewInMemoryCustomerRepository creates an empty in-memory customer repository
func NewInMemoryCustomerRepository() *InMemoryCustomerRepository {
	return &InMemoryCustomerRepository{
		byID: make(map[string]int),
	}
}

// Create stores a customer
func (r *InMemoryCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[customer.ID] = len(r.customers)
	r.customers = append(r.customers, *customer)
	return nil
}

// GetByID returns a customer by its ID
func (r *InMemoryCustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, exists := r.byID[id]
	if !exists {
		return nil, ErrNotFound
	}
	customer := r.customers[idx]
	return &customer, nil
}

// List returns all customers, most recently created first
func (r *InMemoryCustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]models.Customer, 0, len(r.customers))
	for i := len(r.customers) - 1; i >= 0; i-- {
		customers = append(customers, r.customers[i])
	}
	return customers, nil
}

// InMemoryOrderRepository implements OrderRepository with in-memory storage
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
}

// NewInMemoryOrderRepository creates an empty in-memory order repository
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{}
}

// Create stores an order together with a private copy of its items
func (r *InMemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	stored := *order
	stored.Items = append([]models.OrderItem(nil), order.Items...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, stored)
	return nil
}

// List returns all orders, most recently created first
func (r *InMemoryOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		order := r.orders[i]
		order.Items = append([]models.OrderItem{}, order.Items...)
		orders = append(orders, order)
	}
	return orders, nil
}
