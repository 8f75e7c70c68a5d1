package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCreateCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand("guest@example.com", testAddress(t), testLines(t))
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	store := newMemoryStore()
	notifier := newRecordingNotifier()

	h := commands.NewCreateOrderCommandHandler(store, notifier, discardLogger())
	id, err := h.Handle(ctx, newCreateCommand(t))
	require.NoError(t, err)

	stored := store.snapshot(t, id)
	assert.Equal(t, order.Ordered, stored.Status())
	assert.Equal(t, order.Ready, stored.DeliveryStatus())
	assert.Equal(t, 3500, stored.TotalPrice())
	assert.Equal(t, "Colombia Supremo 500g", stored.RepresentativeItemName())
	assert.Equal(t, []order.NotificationKind{order.NotificationOrderReceived}, notifier.sentTo(id))
}

func TestCreateOrderCommandHandler_Handle_TwoOrdersGetDistinctIDs(t *testing.T) {
	ctx := t.Context()
	store := newMemoryStore()
	h := commands.NewCreateOrderCommandHandler(store, newRecordingNotifier(), discardLogger())

	first, err := h.Handle(ctx, newCreateCommand(t))
	require.NoError(t, err)
	second, err := h.Handle(ctx, newCreateCommand(t))
	require.NoError(t, err)

	assert.False(t, first.IsEqual(second))
}

func TestCreateOrderCommandHandler_Handle_NotificationFailureIsNotFatal(t *testing.T) {
	ctx := t.Context()
	store := newMemoryStore()

	notifier := new(MockNotifier)
	notifier.On("Send", ctx, mock.AnythingOfType("order.Notification")).
		Return(errors.New("mail relay down")).Once()

	h := commands.NewCreateOrderCommandHandler(store, notifier, discardLogger())
	id, err := h.Handle(ctx, newCreateCommand(t))
	require.NoError(t, err)

	store.snapshot(t, id)
	notifier.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, new(MockNotifier), discardLogger())

	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, new(MockNotifier), discardLogger())
	_, err := h.Handle(ctx, newCreateCommand(t))
	require.ErrorIs(t, err, commands.ErrCreationFailed)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	h := commands.NewCreateOrderCommandHandler(factory, notifier, discardLogger())
	_, err := h.Handle(ctx, newCreateCommand(t))
	require.ErrorIs(t, err, commands.ErrCreationFailed)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, new(MockNotifier), discardLogger())
	_, err := h.Handle(ctx, newCreateCommand(t))
	require.ErrorIs(t, err, commands.ErrCreationFailed)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NotReadableAfterCommit(t *testing.T) {
	ctx := t.Context()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, mock.Anything).Return(nil, false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	h := commands.NewCreateOrderCommandHandler(factory, notifier, discardLogger())
	_, err := h.Handle(ctx, newCreateCommand(t))
	require.ErrorIs(t, err, commands.ErrCreationFailed)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ReadBackError(t *testing.T) {
	ctx := t.Context()

	repo := new(MockOrderRepository)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	repo.On("Get", mock.Anything, mock.Anything).Return(nil, false, errors.New("connection reset")).Once()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, new(MockNotifier), discardLogger())
	_, err := h.Handle(ctx, newCreateCommand(t))
	require.ErrorIs(t, err, commands.ErrCreationFailed)
	assert.Contains(t, err.Error(), "connection reset")
	repo.AssertExpectations(t)
}
