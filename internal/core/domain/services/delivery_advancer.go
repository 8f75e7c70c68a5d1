package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
)

// ErrOrderIsFrozen is returned for cancelled orders. They keep whatever delivery
// status they had at cancellation time, and the scheduler skips them.
var ErrOrderIsFrozen = errors.New("order is frozen")

// DeliveryAdvancer is the domain service behind a delivery transition pass.
//
// Business rules:
//   - Only Ordered orders move; cancelled ones are frozen
//   - Delivered orders are terminal and fail with order.ErrInvalidTransition
//   - Eligible orders move exactly one step and yield the customer notification
//
// Example usage:
//
//	advancer := services.NewDeliveryAdvancer()
//	n, err := advancer.Advance(o)
//	switch {
//	case errors.Is(err, services.ErrOrderIsFrozen):
//	    // skipped, not a failure
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // terminal, recorded
//	case err == nil:
//	    // persist o, then dispatch n
//	}
type DeliveryAdvancer struct{}

// NewDeliveryAdvancer creates a new DeliveryAdvancer instance.
func NewDeliveryAdvancer() DeliveryAdvancer {
	return DeliveryAdvancer{}
}

// Advance validates the order, classifies it and, when eligible, moves its
// delivery status one step forward. The order is left unchanged on any error.
func (DeliveryAdvancer) Advance(o *order.Order) (order.Notification, error) {
	if err := o.Validate(); err != nil {
		return order.Notification{}, err
	}

	if o.Status() != order.Ordered {
		return order.Notification{}, fmt.Errorf("%w: %s is %s", ErrOrderIsFrozen, o.ID(), o.Status())
	}

	return o.AdvanceDelivery()
}
