package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrSetDeliveryStatusCommandIsNotConstructed = errors.New(
	"SetDeliveryStatusCommand must be created via NewSetDeliveryStatusCommand constructor",
)

// SetDeliveryStatusCommand is the administrative override of the delivery
// status. Any valid status may be set, backwards included.
type SetDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.DeliveryStatus

	guard guard.ConstructorGuard
}

func NewSetDeliveryStatusCommand(orderID kernel.UUID, status order.DeliveryStatus) (SetDeliveryStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return SetDeliveryStatusCommand{}, err
	}

	return SetDeliveryStatusCommand{
		orderID: orderID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SetDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetDeliveryStatusCommandIsNotConstructed)
}

func (c SetDeliveryStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SetDeliveryStatusCommand) Status() order.DeliveryStatus {
	return c.status
}
