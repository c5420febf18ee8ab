package domain

import "time"

// OrderStatusCancelled is excluded from sales aggregations.
const OrderStatusCancelled = "Cancelled"

// Order is the header of a customer order.
type Order struct {
	OrderID     int64      `json:"order_id" db:"order_id"`
	UserID      int64      `json:"user_id" db:"user_id"`
	Status      string     `json:"status" db:"status"`
	Gender      *string    `json:"gender" db:"gender"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	ReturnedAt  *time.Time `json:"returned_at" db:"returned_at"`
	ShippedAt   *time.Time `json:"shipped_at" db:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at" db:"delivered_at"`
	NumOfItem   int64      `json:"num_of_item" db:"num_of_item"`
}

// OrderItem is one line of an order. ProductID and OrderID are not
// enforced references.
type OrderItem struct {
	ID              int64      `json:"id" db:"id"`
	OrderID         int64      `json:"order_id" db:"order_id"`
	UserID          int64      `json:"user_id" db:"user_id"`
	ProductID       int64      `json:"product_id" db:"product_id"`
	InventoryItemID *int64     `json:"inventory_item_id" db:"inventory_item_id"`
	Status          string     `json:"status" db:"status"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	ShippedAt       *time.Time `json:"shipped_at" db:"shipped_at"`
	DeliveredAt     *time.Time `json:"delivered_at" db:"delivered_at"`
	ReturnedAt      *time.Time `json:"returned_at" db:"returned_at"`
}

// OrderItemDetail is an order item with its product joined. Product is nil
// when the referenced product does not exist.
type OrderItemDetail struct {
	OrderItem
	Product *Product `json:"product"`
}

// OrderDetail is an order together with all of its items.
type OrderDetail struct {
	Order *Order            `json:"order"`
	Items []OrderItemDetail `json:"items"`
}
