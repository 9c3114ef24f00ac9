package api

import (
	"context"
	"fmt"

	"github.com/naveen1798kumar/acb-dashboard/internal/models"
)

// ListOrders returns all orders.
func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	data, err := c.getRaw(ctx, c.url("/orders"))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return decodeList[models.Order](data, "orders")
}

// GetOrder returns a single order. The server answers either {"order": {...}}
// or the bare record depending on version.
func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	data, err := c.getRaw(ctx, c.url("/orders/"+id))
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	o, err := decodeRecord[models.Order](data, "order")
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return &o, nil
}

// UpdateOrderStatus sets the fulfillment status of an order.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	if err := c.doJSON(ctx, "PUT", c.url("/orders/"+id+"/status"), body, nil); err != nil {
		return fmt.Errorf("update order %s status: %w", id, err)
	}
	return nil
}
