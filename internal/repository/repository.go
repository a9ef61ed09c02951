package repository

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/order-desk/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
)

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	// List returns customers newest first
	List(ctx context.Context) ([]models.Customer, error)
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	// List returns orders newest first, each with its items
	List(ctx context.Context) ([]models.Order, error)
}
