package models

import (
	"fmt"
	"time"
)

// OrderStatus is the lifecycle label of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPaid      OrderStatus = "Paid"
	StatusShipped   OrderStatus = "Shipped"
	StatusCancelled OrderStatus = "Cancelled"
)

// Statuses lists every status in display order.
var Statuses = []OrderStatus{StatusPending, StatusPaid, StatusShipped, StatusCancelled}

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus returns the status named by v, or an error for unknown values
func ParseStatus(v string) (OrderStatus, error) {
	s := OrderStatus(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown order status %q", v)
	}
	return s, nil
}

// OrderItem is a single line of an order. It has no identity of its own.
type OrderItem struct {
	Name            string  `json:"name"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
}

// OrderRequest is the body of POST /orders
type OrderRequest struct {
	CustomerID           string      `json:"customer_id"`
	Status               OrderStatus `json:"status"`
	OrderDiscountPercent float64     `json:"order_discount_percent"`
	Items                []OrderItem `json:"items"`
}

// Order is a created order with its derived pricing fields.
// Subtotal, DiscountTotal and Total are computed by the backend.
type Order struct {
	ID                   string      `json:"_id"`
	CustomerID           string      `json:"customer_id"`
	CustomerName         string      `json:"customer_name,omitempty"`
	Status               OrderStatus `json:"status"`
	OrderDiscountPercent float64     `json:"order_discount_percent"`
	Items                []OrderItem `json:"items"`
	Subtotal             float64     `json:"subtotal"`
	DiscountTotal        float64     `json:"discount_total"`
	Total                float64     `json:"total"`
	CreatedAt            time.Time   `json:"created_at"`
}
