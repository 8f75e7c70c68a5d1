// Package ports defines the contracts between the fulfillment core and its
// infrastructure: the order store, the notification dispatcher and the unit
// of work that scopes store transactions.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrPersistenceConflict is returned by Update when the stored version no
// longer matches the aggregate's, meaning another writer got there first.
var ErrPersistenceConflict = errs.ErrVersionIsInvalid

// UnreadableOrder is a stored order that could not be restored into an
// aggregate, e.g. because its lines are gone or a status code is unknown.
type UnreadableOrder struct {
	ID  kernel.UUID
	Err error
}

// OrderRepository defines the persistence contract for order aggregates.
//
// Reads report absence as a value: Get returns found=false and list methods
// return an empty slice. Turning absence into a NotFound failure is up to the
// callers. List reads skip stored orders that cannot be restored, so one
// corrupt row never hides the rest.
type OrderRepository interface {
	// Add persists a new order together with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the commercial and delivery status of an existing order.
	// The write only applies when the stored version equals aggregate.Version();
	// otherwise it fails with ErrPersistenceConflict. Lines are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines in sequence order.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, bool, error)

	// GetAllByEmail retrieves every order of a customer, newest first.
	GetAllByEmail(ctx context.Context, email string) ([]*order.Order, error)

	// GetRecentByEmail retrieves at most limit orders of a customer, newest first.
	GetRecentByEmail(ctx context.Context, email string, limit int) ([]*order.Order, error)

	// GetAllByDeliveryStatusIn retrieves the orders whose delivery status is one
	// of statuses, regardless of their commercial status. Matching rows that
	// cannot be restored come back as unreadable instead of failing the call.
	GetAllByDeliveryStatusIn(
		ctx context.Context,
		statuses ...order.DeliveryStatus,
	) ([]*order.Order, []UnreadableOrder, error)

	// GetAll retrieves every order, newest first.
	GetAll(ctx context.Context) ([]*order.Order, error)
}
