package models

import "time"

// Order is a customer order as returned by the API.
type Order struct {
	ID            string      `json:"_id"`
	Customer      Customer    `json:"customer"`
	Items         []OrderItem `json:"items,omitempty"`
	Total         float64     `json:"total"`
	PaymentStatus string      `json:"paymentStatus,omitempty"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt,omitempty"`
}

// Customer is the buyer attached to an order.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string  `json:"productId,omitempty"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order statuses understood by the dashboard. The server owns the actual
// state machine; these are only used for display and flag validation.
const (
	OrderCreated   = "created"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)
