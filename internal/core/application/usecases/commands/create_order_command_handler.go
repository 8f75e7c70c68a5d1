package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ErrCreationFailed is returned when the store cannot confirm a new order:
// the insert or commit failed, or the order cannot be read back by id.
var ErrCreationFailed = errors.New("order creation failed")

// CreateOrderCommandHandler places new orders in Ordered/Ready state.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, notifier, logger)
//	id, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, order.ErrInvalidOrder) {
//	    // bad input
//	}
//	if errors.Is(err, ErrCreationFailed) {
//	    // store did not confirm the write
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
// The notifier sends the order confirmation after the write is verified.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "create_order_command_handler"),
	}
}

// Handle stores the order, re-reads it by id outside the transaction, and
// only then reports success. The confirmation notification is best-effort:
// a dispatch failure is logged and never fails creation.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), cmd.Email(), cmd.Address(), cmd.Lines())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: %w", ErrCreationFailed, err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: %w", ErrCreationFailed, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: %w", ErrCreationFailed, err)
	}

	// After Commit the repository is bound to the plain connection again.
	stored, found, err := uow.OrderRepository().Get(ctx, o.ID())
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: %w", ErrCreationFailed, err)
	}
	if !found {
		return kernel.UUID{}, fmt.Errorf("%w: order %s is not readable after commit", ErrCreationFailed, o.ID())
	}

	if err = h.notifier.Send(ctx, stored.ReceivedNotification()); err != nil {
		h.logger.WarnContext(ctx, "Order confirmation was not sent",
			"order_id", stored.ID().String(), "error", err)
	}

	return stored.ID(), nil
}
