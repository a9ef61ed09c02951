package ui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"
	"text/tabwriter"

	"github.com/Lixing-Zhang/order-desk/internal/models"
	"github.com/Lixing-Zhang/order-desk/internal/pricing"
)

// OrderLister fetches the full orders list
type OrderLister interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// OrdersList shows every order. Each refresh replaces the whole list with
// one retrieval; nothing is cached between refreshes.
type OrdersList struct {
	api OrderLister

	mu         sync.Mutex
	orders     []models.Order
	loading    bool
	loaded     bool
	refreshKey int
	errMsg     string
}

// NewOrdersList creates an empty listing
func NewOrdersList(api OrderLister) *OrdersList {
	return &OrdersList{api: api}
}

// Refresh replaces the list with the backend's current orders.
// On failure the previous list is kept and Err holds the message.
func (l *OrdersList) Refresh(ctx context.Context) error {
	l.mu.Lock()
	l.loading = true
	l.mu.Unlock()

	orders, err := l.api.ListOrders(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		l.errMsg = err.Error()
		return err
	}
	l.orders = orders
	l.loaded = true
	l.errMsg = ""
	return nil
}

// Bump advances the refresh trigger and refreshes
func (l *OrdersList) Bump(ctx context.Context) error {
	l.mu.Lock()
	l.refreshKey++
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// RefreshKey is the number of explicit refresh triggers so far
func (l *OrdersList) RefreshKey() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.refreshKey
}

// Orders returns a copy of the current list
func (l *OrdersList) Orders() []models.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Order(nil), l.orders...)
}

// Loading reports whether a refresh is in flight
func (l *OrdersList) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the message of the last failed refresh, if any
func (l *OrdersList) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

// Render writes the listing. Currency is shown with two decimals and each
// item's price is the shared pricing function's effective price.
func (l *OrdersList) Render(w io.Writer) error {
	l.mu.Lock()
	orders := append([]models.Order(nil), l.orders...)
	loading, loaded, errMsg := l.loading, l.loaded, l.errMsg
	l.mu.Unlock()

	if !loaded && !loading && errMsg != "" {
		_, err := fmt.Fprintf(w, "Failed to load orders: %s\n", errMsg)
		return err
	}
	if loading || !loaded {
		_, err := fmt.Fprintln(w, "Loading...")
		return err
	}
	if errMsg != "" {
		if _, err := fmt.Fprintf(w, "Refresh failed: %s\n", errMsg); err != nil {
			return err
		}
	}
	if len(orders) == 0 {
		_, err := fmt.Fprintln(w, "No orders yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t$%s\n", displayName(o), pricing.FormatMoney(o.Total))
		fmt.Fprintf(tw, "Status: %s\tSubtotal $%s • Discounts $%s\n",
			o.Status, pricing.FormatMoney(o.Subtotal), pricing.FormatMoney(o.DiscountTotal))
		for _, it := range o.Items {
			fmt.Fprintf(tw, "- %s x%d @ $%s (%s%% off)\t$%s\n",
				it.Name, it.Quantity, pricing.FormatMoney(it.UnitPrice),
				strconv.FormatFloat(it.DiscountPercent, 'f', -1, 64),
				pricing.FormatMoney(pricing.EffectivePrice(it)))
		}
		fmt.Fprintln(tw, "\t")
	}
	return tw.Flush()
}

func displayName(o models.Order) string {
	if o.CustomerName != "" {
		return o.CustomerName
	}
	return o.CustomerID
}
