// Package ui holds the client-side view state of the order desk: the
// customer directory, the order draft and the orders listing.
//
// Each state object owns its data and is mutated only by its own methods,
// so a customer creation and an order creation may be in flight at the same
// time without coordinating.
package ui

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/order-desk/internal/models"
)

var (
	ErrNoCustomer    = errors.New("select a customer first")
	ErrSubmitting    = errors.New("a submission is already in progress")
	ErrItemIndex     = errors.New("no item at that position")
	ErrNameRequired  = errors.New("name is required")
	ErrEmailRequired = errors.New("email is required")
)

// CustomerAPI is the part of the backend the directory needs
type CustomerAPI interface {
	CreateCustomer(ctx context.Context, req models.CustomerRequest) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

// OrderAPI is the part of the backend the order views need
type OrderAPI interface {
	CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// API is the whole backend surface
type API interface {
	CustomerAPI
	OrderAPI
}

// App composes the three views the way the page lays them out.
// A created order bumps the listing's refresh trigger.
type App struct {
	Directory *Directory
	Draft     *OrderDraft
	Orders    *OrdersList
}

// NewApp wires the views to api
func NewApp(api API) *App {
	orders := NewOrdersList(api)
	return &App{
		Directory: NewDirectory(api),
		Orders:    orders,
		Draft: NewOrderDraft(api, func(ctx context.Context, _ *models.Order) {
			// a failed refresh is reported by orders.Err and Render
			_ = orders.Bump(ctx)
		}),
	}
}

// Start performs the initial loads of customers and orders
func (a *App) Start(ctx context.Context) error {
	customerErr := a.Directory.Load(ctx)
	orderErr := a.Orders.Refresh(ctx)
	return errors.Join(customerErr, orderErr)
}
