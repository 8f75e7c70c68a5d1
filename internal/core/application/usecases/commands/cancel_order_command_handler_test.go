package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle(t *testing.T) {
	tests := []struct {
		name        string
		status      order.OrderStatus
		delivery    order.DeliveryStatus
		wantVersion int
	}{
		{"ready order", order.Ordered, order.Ready, 1},
		{"order in transit", order.Ordered, order.InTransit, 1},
		{"delivered order", order.Ordered, order.Delivered, 1},
		{"already cancelled order", order.Cancelled, order.Ready, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			o := newTestOrder(t, tt.status, tt.delivery)
			store.put(t, o)

			cmd, err := commands.NewCancelOrderCommand(o.ID())
			require.NoError(t, err)

			h := commands.NewCancelOrderCommandHandler(store)
			require.NoError(t, h.Handle(t.Context(), cmd))

			stored := store.snapshot(t, o.ID())
			assert.Equal(t, order.Cancelled, stored.Status())
			assert.Equal(t, tt.delivery, stored.DeliveryStatus())
			assert.Equal(t, tt.wantVersion, stored.Version())
		})
	}
}

func TestCancelOrderCommandHandler_Handle_AlreadyCancelledWritesNothing(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t, order.Cancelled, order.InTransit)

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, o.ID()).Return(o, true, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewCancelOrderCommand(o.ID())
	require.NoError(t, err)

	h := commands.NewCancelOrderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	repo.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_RepeatDoesNotConflictWithConcurrentWriter(t *testing.T) {
	store := newMemoryStore()
	o := newTestOrder(t, order.Cancelled, order.Ready)
	store.put(t, o)

	// A writer that loaded the order before the repeat cancel.
	stale := store.snapshot(t, o.ID())

	cmd, err := commands.NewCancelOrderCommand(o.ID())
	require.NoError(t, err)
	h := commands.NewCancelOrderCommandHandler(store)
	require.NoError(t, h.Handle(t.Context(), cmd))

	require.NoError(t, stale.OverrideDeliveryStatus(order.InTransit))
	require.NoError(t, store.Update(t.Context(), stale))
	assert.Equal(t, order.InTransit, store.snapshot(t, o.ID()).DeliveryStatus())
}

func TestCancelOrderCommandHandler_Handle_NotFound(t *testing.T) {
	store := newMemoryStore()
	cmd, err := commands.NewCancelOrderCommand(kernel.NewUUID())
	require.NoError(t, err)

	h := commands.NewCancelOrderCommandHandler(store)
	err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCancelOrderCommandHandler_Handle_Conflict(t *testing.T) {
	ctx := t.Context()
	o := newTestOrder(t, order.Ordered, order.Ready)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, o.ID()).Return(o, true, nil).Once(),
		repo.On("Update", ctx, o).Return(errs.NewVersionIsInvalidError("version")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewCancelOrderCommand(o.ID())
	require.NoError(t, err)

	h := commands.NewCancelOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, ports.ErrPersistenceConflict)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_GetError(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	repo := new(MockOrderRepository)
	repo.On("Get", ctx, id).Return(nil, false, errors.New("db down")).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewCancelOrderCommand(id)
	require.NoError(t, err)

	h := commands.NewCancelOrderCommandHandler(factory)
	require.EqualError(t, h.Handle(ctx, cmd), "db down")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	h := commands.NewCancelOrderCommandHandler(new(MockOrderUoWFactory))
	err := h.Handle(t.Context(), commands.CancelOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)
}
