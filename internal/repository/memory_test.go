package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Lixing-Zhang/order-desk/internal/models"
)

func TestInMemoryCustomerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryCustomerRepository()

	for _, c := range []models.Customer{
		{ID: "a", Name: "Ada", Email: "ada@example.com"},
		{ID: "b", Name: "Bob", Email: "bob@example.com"},
		{ID: "c", Name: "Cy", Email: "ada@example.com"},
	} {
		c := c
		if err := repo.Create(ctx, &c); err != nil {
			t.Fatalf("Create(%s) error = %v", c.ID, err)
		}
	}

	t.Run("list newest first", func(t *testing.T) {
		customers, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		got := make([]string, len(customers))
		for i, c := range customers {
			got[i] = c.ID
		}
		want := []string{"c", "b", "a"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("List() ids = %v, want %v", got, want)
			}
		}
	})

	t.Run("get by id", func(t *testing.T) {
		c, err := repo.GetByID(ctx, "b")
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if c.Name != "Bob" {
			t.Errorf("GetByID() name = %s, want Bob", c.Name)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		if _, err := repo.GetByID(ctx, "zzz"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetByID() error = %v, want ErrNotFound", err)
		}
	})
}

func TestInMemoryOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryOrderRepository()

	items := []models.OrderItem{{Name: "Pen", Quantity: 1, UnitPrice: 2}}
	first := &models.Order{ID: "1", CustomerID: "a", Items: items}
	second := &models.Order{ID: "2", CustomerID: "a"}

	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// caller mutations must not leak into the store
	items[0].Name = "Changed"

	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("List() returned %d orders, want 2", len(orders))
	}
	if orders[0].ID != "2" || orders[1].ID != "1" {
		t.Errorf("List() order = %s,%s, want 2,1", orders[0].ID, orders[1].ID)
	}
	if orders[1].Items[0].Name != "Pen" {
		t.Errorf("stored item name = %s, want Pen", orders[1].Items[0].Name)
	}
	if orders[0].Items == nil {
		t.Error("orders without items should list an empty slice, got nil")
	}
}
