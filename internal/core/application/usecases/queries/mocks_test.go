package queries_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, bool, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *MockOrderReader) GetAllByEmail(ctx context.Context, email string) ([]*order.Order, error) {
	args := m.Called(ctx, email)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderReader) GetRecentByEmail(ctx context.Context, email string, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, email, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderReader) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

// newTestOrder builds a two-line order: 2 x 1000 + 1 x 1500.
func newTestOrder(t *testing.T, email string) *order.Order {
	t.Helper()
	addr, err := kernel.NewAddress("Seoul", "Teheran-ro 427", "06159")
	require.NoError(t, err)
	first, err := order.NewLine(kernel.NewUUID(), "Colombia Supremo 500g", 1000, 2)
	require.NoError(t, err)
	second, err := order.NewLine(kernel.NewUUID(), "Kenya AA 200g", 1500, 1)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), email, addr, []order.Line{first, second})
	require.NoError(t, err)
	return o
}
