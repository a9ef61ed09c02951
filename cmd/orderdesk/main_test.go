package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/Lixing-Zhang/order-desk/internal/handlers"
	"github.com/Lixing-Zhang/order-desk/internal/models"
	"github.com/Lixing-Zhang/order-desk/internal/repository"
	"github.com/Lixing-Zhang/order-desk/internal/service"
	"github.com/Lixing-Zhang/order-desk/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) (*httptest.Server, repository.CustomerRepository) {
	t.Helper()
	t.Setenv("BACKEND_URL", "")
	t.Setenv("LOG_LEVEL", "")

	log := logger.New("error")
	customers := repository.NewInMemoryCustomerRepository()
	router := handlers.NewRouter(
		handlers.RouterConfig{AllowedOrigins: []string{"*"}},
		log,
		handlers.NewHealthHandler(log),
		handlers.NewCustomerHandler(service.NewCustomerService(customers), log),
		handlers.NewOrderHandler(service.NewOrderService(customers, repository.NewInMemoryOrderRepository()), log),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, customers
}

func TestRun_CustomerAndOrderFlow(t *testing.T) {
	srv, customers := newBackend(t)
	ctx := context.Background()
	var stdout, stderr bytes.Buffer

	require.NoError(t, run(ctx, []string{"-backend", srv.URL, "customers"}, &stdout, &stderr))
	assert.Equal(t, "No customers yet.\n", stdout.String())

	stdout.Reset()
	require.NoError(t, run(ctx, []string{"-backend", srv.URL, "add-customer", "-name", "Ada", "-email", "ada@example.com"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Created customer")

	list, err := customers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	id := list[0].ID

	stdout.Reset()
	require.NoError(t, run(ctx, []string{
		"-backend", srv.URL, "create-order",
		"-customer", id, "-status", "Paid", "-discount", "10",
		"-item", "Widget:2:10", "-item", "Gadget:1:5:50",
	}, &stdout, &stderr))

	out := stdout.String()
	assert.Contains(t, out, "Preview: subtotal $25.00, discounts $4.75, total $20.25")
	assert.Contains(t, out, "total $20.25")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Status: Paid")

	stdout.Reset()
	require.NoError(t, run(ctx, []string{"-backend", srv.URL, "orders"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "- Gadget x1 @ $5.00 (50% off)")
}

func TestRun_Errors(t *testing.T) {
	srv, _ := newBackend(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no command", args: []string{"-backend", srv.URL}, wantErr: "missing command"},
		{name: "unknown command", args: []string{"-backend", srv.URL, "refund"}, wantErr: `unknown command "refund"`},
		{name: "customer required fields", args: []string{"-backend", srv.URL, "add-customer", "-name", "Ada"}, wantErr: "email is required"},
		{name: "order without customer", args: []string{"-backend", srv.URL, "create-order"}, wantErr: "select a customer first"},
		{name: "unknown customer", args: []string{"-backend", srv.URL, "create-order", "-customer", "nope"}, wantErr: `Customer not found (customer "nope")`},
		{name: "bad status", args: []string{"-backend", srv.URL, "create-order", "-customer", "x", "-status", "Lost"}, wantErr: "unknown order status"},
		{name: "bad item", args: []string{"-backend", srv.URL, "create-order", "-item", "Widget:two:1"}, wantErr: "invalid quantity"},
		{name: "NaN discount", args: []string{"-backend", srv.URL, "create-order", "-customer", "x", "-discount", "NaN"}, wantErr: "discount must be a finite number"},
		{name: "infinite discount", args: []string{"-backend", srv.URL, "create-order", "-customer", "x", "-discount", "-Inf"}, wantErr: "discount must be a finite number"},
		{name: "infinite item price", args: []string{"-backend", srv.URL, "create-order", "-customer", "x", "-item", "w:1:inf"}, wantErr: "price must be a finite number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(ctx, tt.args, &stdout, &stderr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseItem(t *testing.T) {
	tests := []struct {
		in      string
		want    models.OrderItem
		wantErr bool
	}{
		{in: "Widget:2:10", want: models.OrderItem{Name: "Widget", Quantity: 2, UnitPrice: 10}},
		{in: "Gadget:1:5.5:50", want: models.OrderItem{Name: "Gadget", Quantity: 1, UnitPrice: 5.5, DiscountPercent: 50}},
		{in: "Widget:2", wantErr: true},
		{in: "Widget:2:x", wantErr: true},
		{in: "Widget:2:1:off", wantErr: true},
		{in: "a:1:2:3:4", wantErr: true},
		{in: "w:1:NaN", wantErr: true},
		{in: "w:1:inf", wantErr: true},
		{in: "w:1:2:-Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseItem(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
