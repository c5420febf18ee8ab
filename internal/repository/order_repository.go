package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"catalog-assistant/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (*domain.Order, error)
	// FindItems returns the items of an order ordered by item id. An order
	// without items yields an empty slice.
	FindItems(ctx context.Context, orderID int64) ([]*domain.OrderItem, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	query := `
		SELECT order_id, user_id, status, gender, created_at, returned_at, shipped_at, delivered_at, num_of_item
		FROM orders
		WHERE order_id = $1
	`

	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&order.OrderID,
		&order.UserID,
		&order.Status,
		&order.Gender,
		&order.CreatedAt,
		&order.ReturnedAt,
		&order.ShippedAt,
		&order.DeliveredAt,
		&order.NumOfItem,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	return order, nil
}

func (r *orderRepository) FindItems(ctx context.Context, orderID int64) ([]*domain.OrderItem, error) {
	query := `
		SELECT id, order_id, user_id, product_id, inventory_item_id, status,
		       created_at, shipped_at, delivered_at, returned_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order items: %w", err)
	}
	defer rows.Close()

	items := []*domain.OrderItem{}
	for rows.Next() {
		item := &domain.OrderItem{}
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.UserID,
			&item.ProductID,
			&item.InventoryItemID,
			&item.Status,
			&item.CreatedAt,
			&item.ShippedAt,
			&item.DeliveredAt,
			&item.ReturnedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}
