package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// updateOrder loads an order, applies mutate and saves it, all inside one
// unit of work. An unknown id fails with errs.ErrObjectNotFound; a concurrent
// write surfaces as ports.ErrPersistenceConflict from the repository. When
// mutate reports no change nothing is written and the version stays put.
func updateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	mutate func(o *order.Order) (bool, error),
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, found, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if !found {
		return errs.NewObjectNotFoundError("orderId", orderID.String())
	}

	changed, err := mutate(o)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
