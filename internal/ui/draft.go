package ui

import (
	"context"
	"sync"

	"github.com/Lixing-Zhang/order-desk/internal/models"
	"github.com/Lixing-Zhang/order-desk/internal/pricing"
)

// OrderDraft is the order being built: a selected customer, a status, an
// order-level discount and an item list edited by position.
//
// Submit resets the draft only when the backend confirms creation. A failed
// submission leaves everything in place and exposes the message through Err.
type OrderDraft struct {
	api       OrderAPI
	onCreated func(ctx context.Context, order *models.Order)

	mu       sync.Mutex
	selected *models.Customer
	status   models.OrderStatus
	discount float64
	items    []models.OrderItem
	creating bool
	errMsg   string
}

// NewOrderDraft creates an empty draft. onCreated, if set, runs after each
// confirmed creation.
func NewOrderDraft(api OrderAPI, onCreated func(ctx context.Context, order *models.Order)) *OrderDraft {
	return &OrderDraft{
		api:       api,
		onCreated: onCreated,
		status:    models.StatusPending,
	}
}

// Select sets the customer the order is for
func (d *OrderDraft) Select(c models.Customer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = &c
}

// Selected returns the chosen customer, if any
func (d *OrderDraft) Selected() (models.Customer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selected == nil {
		return models.Customer{}, false
	}
	return *d.selected, true
}

// SetStatus picks one of the known statuses
func (d *OrderDraft) SetStatus(s models.OrderStatus) error {
	if _, err := models.ParseStatus(string(s)); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = s
	return nil
}

// Status returns the draft status
func (d *OrderDraft) Status() models.OrderStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// SetDiscount sets the order-level discount percent. The backend decides
// whether the value is acceptable.
func (d *OrderDraft) SetDiscount(percent float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.discount = percent
}

// Discount returns the order-level discount percent
func (d *OrderDraft) Discount() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.discount
}

// AddItem appends a blank item (quantity 1) and returns its position
func (d *OrderDraft) AddItem() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append(d.items, models.OrderItem{Quantity: 1})
	return len(d.items) - 1
}

// UpdateItem replaces the item at position i
func (d *OrderDraft) UpdateItem(i int, item models.OrderItem) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.items) {
		return ErrItemIndex
	}
	d.items[i] = item
	return nil
}

// RemoveItem deletes the item at position i; later items shift down
func (d *OrderDraft) RemoveItem(i int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i < 0 || i >= len(d.items) {
		return ErrItemIndex
	}
	d.items = append(d.items[:i:i], d.items[i+1:]...)
	return nil
}

// Items returns a copy of the draft items
func (d *OrderDraft) Items() []models.OrderItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.OrderItem(nil), d.items...)
}

// Preview prices the draft with the same function the backend uses
func (d *OrderDraft) Preview() pricing.Breakdown {
	d.mu.Lock()
	defer d.mu.Unlock()
	return pricing.Compute(d.discount, d.items)
}

// Creating reports whether a submission is in flight
func (d *OrderDraft) Creating() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.creating
}

// Err returns the inline error message of the last submission, if any
func (d *OrderDraft) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errMsg
}

// Submit sends the whole draft in one request
func (d *OrderDraft) Submit(ctx context.Context) (*models.Order, error) {
	d.mu.Lock()
	if d.selected == nil {
		d.mu.Unlock()
		return nil, ErrNoCustomer
	}
	if d.creating {
		d.mu.Unlock()
		return nil, ErrSubmitting
	}
	req := models.OrderRequest{
		CustomerID:           d.selected.ID,
		Status:               d.status,
		OrderDiscountPercent: d.discount,
		Items:                append([]models.OrderItem{}, d.items...),
	}
	d.creating = true
	d.errMsg = ""
	d.mu.Unlock()

	order, err := d.api.CreateOrder(ctx, req)

	d.mu.Lock()
	d.creating = false
	if err != nil {
		d.errMsg = err.Error()
		d.mu.Unlock()
		return nil, err
	}
	d.items = nil
	d.discount = 0
	d.status = models.StatusPending
	d.mu.Unlock()

	if d.onCreated != nil {
		d.onCreated(ctx, order)
	}
	return order, nil
}
