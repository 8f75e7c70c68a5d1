package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidOrder wraps every construction failure: missing lines, a line with
	// a non-positive price or count, a bad email or address.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrInvalidTransition is returned when a delivery advance is attempted on a
	// delivered or cancelled order.
	ErrInvalidTransition = errors.New("invalid transition")
)

// Order is the aggregate root of the fulfillment domain. It holds the customer
// email (guest orders have nothing else), the delivery address, the ordered
// lines and the two status machines.
//
// Order follows these invariants:
//   - Lines is never empty and never changes after creation
//   - TotalPrice is recomputed from the lines on every call
//   - DeliveryStatus only moves forward one step at a time through AdvanceDelivery
//   - Cancelled orders cannot be advanced
//
// version is the optimistic-concurrency token owned by the store. The
// aggregate never changes it.
type Order struct {
	id             kernel.UUID
	email          string
	address        kernel.Address
	orderDate      time.Time
	lines          []Line
	status         OrderStatus
	deliveryStatus DeliveryStatus
	version        int

	isConstructed bool
}

// NewOrder creates an Ordered/Ready order dated now. Lines get their sequence
// numbers from their position in the given slice.
//
// Every failure wraps ErrInvalidOrder:
//
//	line, _ := order.NewLine(itemID, "Colombia Supremo 500g", 1000, 2)
//	o, err := order.NewOrder(kernel.NewUUID(), "guest@example.com", addr, []order.Line{line})
//	if errors.Is(err, order.ErrInvalidOrder) {
//	    // reject the request
//	}
func NewOrder(id kernel.UUID, email string, address kernel.Address, lines []Line) (*Order, error) {
	o := &Order{
		orderDate:      time.Now().UTC().Truncate(time.Microsecond),
		status:         Ordered,
		deliveryStatus: Ready,
		isConstructed:  true,
	}

	numbered := make([]Line, len(lines))
	for i, l := range lines {
		l.seq = i
		numbered[i] = l
	}

	if err := errors.Join(
		o.setID(id),
		o.setEmail(email),
		o.setAddress(address),
		o.setLines(numbered),
	); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}

	return o, nil
}

// RestoreOrder rebuilds a persisted order. Lines are ordered by their
// sequence number regardless of the order they are passed in.
func RestoreOrder(
	id kernel.UUID,
	email string,
	address kernel.Address,
	orderDate time.Time,
	lines []Line,
	status OrderStatus,
	deliveryStatus DeliveryStatus,
	version int,
) (*Order, error) {
	o := &Order{
		orderDate:     orderDate.UTC(),
		version:       version,
		isConstructed: true,
	}

	sorted := slices.Clone(lines)
	slices.SortStableFunc(sorted, func(a, b Line) int { return a.seq - b.seq })

	if err := errors.Join(
		o.setID(id),
		o.setEmail(email),
		o.setAddress(address),
		o.setLines(sorted),
		o.setStatus(status),
		o.setDeliveryStatus(deliveryStatus),
	); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}

	return o, nil
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                { return o.id }
func (o *Order) Email() string                  { return o.email }
func (o *Order) Address() kernel.Address        { return o.address }
func (o *Order) OrderDate() time.Time           { return o.orderDate }
func (o *Order) Status() OrderStatus            { return o.status }
func (o *Order) DeliveryStatus() DeliveryStatus { return o.deliveryStatus }
func (o *Order) Version() int                   { return o.version }

// Lines returns a copy of the lines in sequence order.
func (o *Order) Lines() []Line {
	return slices.Clone(o.lines)
}

// RepresentativeItemName is the name of the line with sequence number 0.
func (o *Order) RepresentativeItemName() string {
	return o.lines[0].ItemName()
}

// TotalPrice sums the line totals. It is derived on every call.
func (o *Order) TotalPrice() int {
	total := 0
	for _, l := range o.lines {
		total += l.TotalPrice()
	}
	return total
}

// IsCancelled reports whether the commercial status is Cancelled.
func (o *Order) IsCancelled() bool {
	return o.status == Cancelled
}

// Cancel sets the status to Cancelled and reports whether it changed.
// Cancelling twice is a no-op, and cancelling a delivered order is allowed.
// The delivery status is never touched.
func (o *Order) Cancel() bool {
	if o.status == Cancelled {
		return false
	}
	o.status = Cancelled
	return true
}

// AdvanceDelivery moves the delivery status exactly one step forward and
// returns the notification for the new state:
//   - Ready -> InTransit: shipping started
//   - InTransit -> Delivered: delivered
//
// A cancelled or already delivered order fails with ErrInvalidTransition and
// is left unchanged.
func (o *Order) AdvanceDelivery() (Notification, error) {
	if o.IsCancelled() {
		return Notification{}, fmt.Errorf("%w: order %s is cancelled", ErrInvalidTransition, o.id)
	}

	next, err := o.deliveryStatus.Next()
	if err != nil {
		return Notification{}, err
	}

	o.deliveryStatus = next
	if next == Delivered {
		return newNotification(o, NotificationDelivered), nil
	}
	return newNotification(o, NotificationShippingStarted), nil
}

// ReceivedNotification is the confirmation sent once the order is stored.
func (o *Order) ReceivedNotification() Notification {
	return newNotification(o, NotificationOrderReceived)
}

// OverrideStatus is the administrative override of the commercial status.
// Only the value itself is validated; no transition rule applies.
func (o *Order) OverrideStatus(status OrderStatus) error {
	return o.setStatus(status)
}

// OverrideDeliveryStatus is the administrative override of the delivery
// status. It may move delivery backwards or skip steps.
func (o *Order) OverrideDeliveryStatus(status DeliveryStatus) error {
	return o.setDeliveryStatus(status)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q has no domain part", email))
	}
	o.email = email
	return nil
}

func (o *Order) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	lineErrs := make([]error, 0)
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			lineErrs = append(lineErrs, err)
		}
	}
	if err := errors.Join(lineErrs...); err != nil {
		return err
	}

	o.lines = lines
	return nil
}

func (o *Order) setStatus(status OrderStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setDeliveryStatus(status DeliveryStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.deliveryStatus = status
	return nil
}
