package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

type SetDeliveryStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSetDeliveryStatusCommandHandler(uowFactory OrderUoWFactory) SetDeliveryStatusCommandHandler {
	return SetDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SetDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd SetDeliveryStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) (bool, error) {
		if o.DeliveryStatus() == cmd.Status() {
			return false, nil
		}
		return true, o.OverrideDeliveryStatus(cmd.Status())
	})
}
