package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when a Line did not come from NewLine.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is one priced item within an order. It snapshots the item name and
// unit price at order time and is immutable afterwards.
//
//	line, err := order.NewLine(itemID, "Ethiopia Yirgacheffe 200g", 1000, 2)
//	line.TotalPrice() // 2000
type Line struct { //nolint:recvcheck //using for validation
	itemID     kernel.UUID
	itemName   string
	orderPrice int
	count      int
	seq        int

	guard guard.ConstructorGuard
}

// NewLine validates and builds a Line. Price and count must be positive.
// Failures wrap ErrInvalidOrder.
func NewLine(itemID kernel.UUID, itemName string, orderPrice int, count int) (Line, error) {
	line := Line{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		line.setItemID(itemID),
		line.setItemName(itemName),
		line.setOrderPrice(orderPrice),
		line.setCount(count),
	); err != nil {
		return Line{}, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}

	return line, nil
}

// RestoreLine rebuilds a persisted line with its creation sequence number.
func RestoreLine(seq int, itemID kernel.UUID, itemName string, orderPrice int, count int) (Line, error) {
	line, err := NewLine(itemID, itemName, orderPrice, count)
	if err != nil {
		return Line{}, err
	}
	if seq < 0 {
		return Line{}, fmt.Errorf("%w: %w", ErrInvalidOrder,
			errs.NewValueIsInvalidErrorWithCause("seq", fmt.Errorf("%d is negative", seq)))
	}
	line.seq = seq
	return line, nil
}

// Validate ensures the line was built by NewLine.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ItemID references the catalog item.
func (l Line) ItemID() kernel.UUID { return l.itemID }

// ItemName is the item name at order time.
func (l Line) ItemName() string { return l.itemName }

// OrderPrice is the unit price at order time.
func (l Line) OrderPrice() int { return l.orderPrice }

// Count is the ordered quantity.
func (l Line) Count() int { return l.count }

// Seq is the 0-based position assigned when the order was created.
func (l Line) Seq() int { return l.seq }

// TotalPrice is OrderPrice * Count.
func (l Line) TotalPrice() int {
	return l.orderPrice * l.count
}

func (l *Line) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.itemID = id
	return nil
}

func (l *Line) setItemName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	l.itemName = name
	return nil
}

func (l *Line) setOrderPrice(price int) error {
	if price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order price is invalid", fmt.Errorf("%d is not greater than 0", price))
	}
	l.orderPrice = price
	return nil
}

func (l *Line) setCount(count int) error {
	if count <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("count is invalid", fmt.Errorf("%d is not greater than 0", count))
	}
	l.count = count
	return nil
}
