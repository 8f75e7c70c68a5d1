package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// OrderStatus is the commercial state of an order.
//
//	Ordered ──> Cancelled
type OrderStatus int

const (
	// OrderStatusUnknown catches uninitialized values.
	OrderStatusUnknown OrderStatus = iota
	// Ordered is the state of every newly created order.
	Ordered
	// Cancelled is terminal. Cancelled orders are never advanced by the scheduler.
	Cancelled
)

func getOrderStatusCodes() map[OrderStatus]string {
	return map[OrderStatus]string{
		Ordered:   "ORDERED",
		Cancelled: "CANCELLED",
	}
}

// ParseOrderStatus maps a persisted or transported code back to an OrderStatus.
func ParseOrderStatus(code string) (OrderStatus, error) {
	for s, c := range getOrderStatusCodes() {
		if c == code {
			return s, nil
		}
	}
	return OrderStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"order status is invalid",
		fmt.Errorf("%q is not a known order status", code),
	)
}

// Validate rejects OrderStatusUnknown and out-of-range values.
func (s OrderStatus) Validate() error {
	if _, ok := getOrderStatusCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status is invalid",
			fmt.Errorf("%d is not a valid order status", s),
		)
	}
	return nil
}

// String returns the status code, "UNKNOWN" for invalid values.
func (s OrderStatus) String() string {
	if c, ok := getOrderStatusCodes()[s]; ok {
		return c
	}
	return "UNKNOWN"
}

// DeliveryStatus is the physical delivery state of an order.
//
//	Ready ──> InTransit ──> Delivered
//
// The scheduled path only ever moves one step forward via Next.
type DeliveryStatus int

const (
	// DeliveryStatusUnknown catches uninitialized values.
	DeliveryStatusUnknown DeliveryStatus = iota
	// Ready is the state of every newly created order.
	Ready
	// InTransit means shipping has started.
	InTransit
	// Delivered is terminal.
	Delivered
)

func getDeliveryStatusCodes() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		Ready:     "READY",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
	}
}

// PendingDeliveryStatuses lists the states the scheduler still has to advance.
func PendingDeliveryStatuses() []DeliveryStatus {
	return []DeliveryStatus{Ready, InTransit}
}

// ParseDeliveryStatus maps a persisted or transported code back to a DeliveryStatus.
func ParseDeliveryStatus(code string) (DeliveryStatus, error) {
	for s, c := range getDeliveryStatusCodes() {
		if c == code {
			return s, nil
		}
	}
	return DeliveryStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery status is invalid",
		fmt.Errorf("%q is not a known delivery status", code),
	)
}

// Validate rejects DeliveryStatusUnknown and out-of-range values.
func (s DeliveryStatus) Validate() error {
	if _, ok := getDeliveryStatusCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery status is invalid",
			fmt.Errorf("%d is not a valid delivery status", s),
		)
	}
	return nil
}

// String returns the status code, "UNKNOWN" for invalid values.
func (s DeliveryStatus) String() string {
	if c, ok := getDeliveryStatusCodes()[s]; ok {
		return c
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further delivery step exists.
func (s DeliveryStatus) IsTerminal() bool {
	return s == Delivered
}

// Next returns the following delivery step.
//
// Valid transitions:
//   - Ready -> InTransit
//   - InTransit -> Delivered
//
// Delivered and unknown values fail with ErrInvalidTransition.
func (s DeliveryStatus) Next() (DeliveryStatus, error) {
	switch s {
	case Ready:
		return InTransit, nil
	case InTransit:
		return Delivered, nil
	case DeliveryStatusUnknown, Delivered:
	}
	return DeliveryStatusUnknown, fmt.Errorf("%w: %s has no next delivery step", ErrInvalidTransition, s)
}
