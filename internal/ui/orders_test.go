package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Lixing-Zhang/order-desk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdersList_RefreshReplaces(t *testing.T) {
	api := &fakeAPI{orders: []models.Order{{ID: "o1"}, {ID: "o2"}}}
	list := NewOrdersList(api)
	ctx := context.Background()

	require.NoError(t, list.Refresh(ctx))
	assert.Len(t, list.Orders(), 2)

	api.orders = []models.Order{{ID: "o3"}}
	require.NoError(t, list.Bump(ctx))

	orders := list.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "o3", orders[0].ID)
	assert.Equal(t, 1, list.RefreshKey())
	assert.Equal(t, 2, api.listCalls)
}

func TestOrdersList_RefreshFailureKeepsList(t *testing.T) {
	api := &fakeAPI{orders: []models.Order{{ID: "o1"}}}
	list := NewOrdersList(api)
	ctx := context.Background()
	require.NoError(t, list.Refresh(ctx))

	api.listOrdersErr = errors.New("connection refused")
	require.Error(t, list.Refresh(ctx))

	assert.Len(t, list.Orders(), 1)
	assert.Equal(t, "connection refused", list.Err())
	assert.False(t, list.Loading())
}

func TestOrdersList_Render(t *testing.T) {
	api := &fakeAPI{orders: []models.Order{
		{
			ID: "o1", CustomerID: "c1", CustomerName: "Ada", Status: models.StatusPending,
			Subtotal: 25, DiscountTotal: 4.75, Total: 20.25,
			Items: []models.OrderItem{
				{Name: "Widget", Quantity: 2, UnitPrice: 10},
				{Name: "Gadget", Quantity: 1, UnitPrice: 5, DiscountPercent: 50},
			},
		},
		{ID: "o2", CustomerID: "c-orphan", Status: models.StatusPaid},
	}}
	list := NewOrdersList(api)

	var buf bytes.Buffer
	require.NoError(t, list.Render(&buf))
	assert.Equal(t, "Loading...\n", buf.String())

	require.NoError(t, list.Refresh(context.Background()))
	buf.Reset()
	require.NoError(t, list.Render(&buf))
	out := buf.String()

	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "$20.25")
	assert.Contains(t, out, "Subtotal $25.00 • Discounts $4.75")
	assert.Contains(t, out, "- Widget x2 @ $10.00 (0% off)")
	assert.Contains(t, out, "- Gadget x1 @ $5.00 (50% off)")
	assert.Contains(t, out, "$2.50")
	assert.Contains(t, out, "c-orphan", "customer id is shown when the name is missing")
	assert.Less(t, strings.Index(out, "Ada"), strings.Index(out, "c-orphan"))
}

func TestOrdersList_RenderRefreshFailure(t *testing.T) {
	api := &fakeAPI{listOrdersErr: errors.New("connection refused")}
	list := NewOrdersList(api)
	ctx := context.Background()

	require.Error(t, list.Refresh(ctx))
	var buf bytes.Buffer
	require.NoError(t, list.Render(&buf))
	assert.Equal(t, "Failed to load orders: connection refused\n", buf.String())

	api.listOrdersErr = nil
	api.orders = []models.Order{{ID: "o1", CustomerID: "c1", Status: models.StatusPaid}}
	require.NoError(t, list.Refresh(ctx))

	api.listOrdersErr = errors.New("timeout")
	require.Error(t, list.Refresh(ctx))
	buf.Reset()
	require.NoError(t, list.Render(&buf))
	assert.Contains(t, buf.String(), "Refresh failed: timeout")
	assert.Contains(t, buf.String(), "c1", "the previous list is still shown")
}

func TestOrdersList_RenderEmpty(t *testing.T) {
	list := NewOrdersList(&fakeAPI{})
	require.NoError(t, list.Refresh(context.Background()))

	var buf bytes.Buffer
	require.NoError(t, list.Render(&buf))
	assert.Equal(t, "No orders yet.\n", buf.String())
}

func TestApp_OrderCreationRefreshesListing(t *testing.T) {
	api := &fakeAPI{customers: []models.Customer{{ID: "c1", Name: "Ada", Email: "ada@example.com"}}}
	app := NewApp(api)
	ctx := context.Background()

	require.NoError(t, app.Start(ctx))
	assert.Empty(t, app.Orders.Orders())

	c, ok := app.Directory.Lookup("c1")
	require.True(t, ok)
	app.Draft.Select(c)
	app.Draft.AddItem()

	_, err := app.Draft.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, app.Orders.RefreshKey())
	assert.Len(t, app.Orders.Orders(), 1)
}

func TestApp_FailedOrderDoesNotRefresh(t *testing.T) {
	api := &fakeAPI{createOrderErr: errBackend}
	app := NewApp(api)
	ctx := context.Background()
	require.NoError(t, app.Start(ctx))

	app.Draft.Select(models.Customer{ID: "c1"})
	_, err := app.Draft.Submit(ctx)
	require.Error(t, err)

	assert.Equal(t, 0, app.Orders.RefreshKey())
	assert.Equal(t, 1, api.listCalls)
}

func TestApp_RefreshFailureAfterCreationIsShown(t *testing.T) {
	api := &fakeAPI{listOrdersErr: errors.New("connection refused")}
	app := NewApp(api)
	ctx := context.Background()

	app.Draft.Select(models.Customer{ID: "c1"})
	_, err := app.Draft.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, app.Orders.RefreshKey())
	assert.Equal(t, "connection refused", app.Orders.Err())

	var buf bytes.Buffer
	require.NoError(t, app.Orders.Render(&buf))
	assert.Equal(t, "Failed to load orders: connection refused\n", buf.String())
}
