package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

type SetOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewSetOrderStatusCommandHandler(uowFactory OrderUoWFactory) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return updateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) (bool, error) {
		if o.Status() == cmd.Status() {
			return false, nil
		}
		return true, o.OverrideStatus(cmd.Status())
	})
}
