package ui

import (
	"context"
	"errors"
	"sync"

	"github.com/Lixing-Zhang/order-desk/internal/models"
	"github.com/Lixing-Zhang/order-desk/internal/pricing"
)

// fakeAPI is an in-process backend. Set the *Err fields to make calls fail;
// set block to hold CreateOrder/CreateCustomer until it is closed.
type fakeAPI struct {
	mu        sync.Mutex
	customers []models.Customer
	orders    []models.Order
	requests  []models.OrderRequest
	listCalls int

	createCustomerErr error
	createOrderErr    error
	listOrdersErr     error
	block             chan struct{}
	started           chan struct{}
}

func (f *fakeAPI) wait() {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeAPI) CreateCustomer(ctx context.Context, req models.CustomerRequest) (*models.Customer, error) {
	f.wait()
	if f.createCustomerErr != nil {
		return nil, f.createCustomerErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := models.Customer{ID: "srv-" + req.Name, Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address}
	f.customers = append([]models.Customer{c}, f.customers...)
	return &c, nil
}

func (f *fakeAPI) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Customer{}, f.customers...), nil
}

func (f *fakeAPI) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.createOrderErr != nil {
		return nil, f.createOrderErr
	}
	o := models.Order{
		ID:                   "order-" + string(rune('a'+len(f.orders))),
		CustomerID:           req.CustomerID,
		Status:               req.Status,
		OrderDiscountPercent: req.OrderDiscountPercent,
		Items:                req.Items,
	}
	pricing.Apply(&o)
	f.orders = append([]models.Order{o}, f.orders...)
	return &o, nil
}

func (f *fakeAPI) ListOrders(ctx context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listOrdersErr != nil {
		return nil, f.listOrdersErr
	}
	return append([]models.Order{}, f.orders...), nil
}

var errBackend = errors.New("Customer not found")
