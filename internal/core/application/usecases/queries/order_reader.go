// Package queries contains read-only operations over stored orders.
// Handlers assemble summary and detail views; totals and representative item
// names are always derived from the order lines, never stored.
package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderReader is the read side of the order store. ports.OrderRepository
// satisfies it.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, bool, error)
	GetAllByEmail(ctx context.Context, email string) ([]*order.Order, error)
	GetRecentByEmail(ctx context.Context, email string, limit int) ([]*order.Order, error)
	GetAll(ctx context.Context) ([]*order.Order, error)
}
