package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/order-desk/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool the Postgres repositories use
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresCustomerRepository implements CustomerRepository on Postgres
type PostgresCustomerRepository struct {
	db DBTX
}

// NewPostgresCustomerRepository creates a customer repository backed by db
func NewPostgresCustomerRepository(db DBTX) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

func (r *PostgresCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, customer.ID, customer.Name, customer.Email, customer.Phone, customer.Address, customer.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *PostgresCustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	query := `
		SELECT id, name, email, phone, address, created_at
		FROM customers
		WHERE id = $1
	`
	var c models.Customer
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select customer %s: %w", id, err)
	}
	return &c, nil
}

func (r *PostgresCustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	query := `
		SELECT id, name, email, phone, address, created_at
		FROM customers
		ORDER BY created_at DESC, seq DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]models.Customer, 0)
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// PostgresOrderRepository implements OrderRepository on Postgres.
// Items live in order_items keyed by (order_id, position). Rows created in
// the same microsecond are ordered by their insertion sequence.
type PostgresOrderRepository struct {
	db DBTX
}

// NewPostgresOrderRepository creates an order repository backed by db
func NewPostgresOrderRepository(db DBTX) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// Create inserts the order and all of its items in one transaction
func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}

	orderQuery := `
		INSERT INTO orders (id, customer_id, customer_name, status, order_discount_percent, subtotal, discount_total, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := tx.Exec(ctx, orderQuery,
		order.ID, order.CustomerID, order.CustomerName, string(order.Status), order.OrderDiscountPercent,
		order.Subtotal, order.DiscountTotal, order.Total, order.CreatedAt,
	); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, position, name, quantity, unit_price, discount_percent)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i, item := range order.Items {
		if _, err := tx.Exec(ctx, itemQuery, order.ID, i, item.Name, item.Quantity, item.UnitPrice, item.DiscountPercent); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("insert order item %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

func (r *PostgresOrderRepository) List(ctx context.Context) ([]models.Order, error) {
	orderQuery := `
		SELECT id, customer_id, customer_name, status, order_discount_percent, subtotal, discount_total, total, created_at
		FROM orders
		ORDER BY created_at DESC, seq DESC
	`
	rows, err := r.db.Query(ctx, orderQuery)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]models.Order, 0)
	index := make(map[string]int)
	ids := make([]string, 0)
	for rows.Next() {
		var o models.Order
		var status string
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &status, &o.OrderDiscountPercent,
			&o.Subtotal, &o.DiscountTotal, &o.Total, &o.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status = models.OrderStatus(status)
		o.Items = []models.OrderItem{}
		index[o.ID] = len(orders)
		ids = append(ids, o.ID)
		orders = append(orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemQuery := `
		SELECT order_id, name, quantity, unit_price, discount_percent
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`
	itemRows, err := r.db.Query(ctx, itemQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var item models.OrderItem
		if err := itemRows.Scan(&orderID, &item.Name, &item.Quantity, &item.UnitPrice, &item.DiscountPercent); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if idx, ok := index[orderID]; ok {
			orders[idx].Items = append(orders[idx].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	return orders, nil
}
