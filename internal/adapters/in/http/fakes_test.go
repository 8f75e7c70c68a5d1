package http_test

import (
	"context"
	"slices"
	"sync"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// orderStore is an in-memory order repository shared by the command and
// query handlers under test.
type orderStore struct {
	mu     sync.Mutex
	ids    []kernel.UUID
	orders map[kernel.UUID]*order.Order
}

func newOrderStore() *orderStore {
	return &orderStore{orders: make(map[kernel.UUID]*order.Order)}
}

func (s *orderStore) Create() commands.OrderUoW { return storeUoW{store: s} }

func (s *orderStore) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, o.ID())
	s.orders[o.ID()] = clone(o, 0)
	return nil
}

func (s *orderStore) Update(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[o.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("orderId", o.ID().String())
	}
	if stored.Version() != o.Version() {
		return errs.NewVersionIsInvalidError("version")
	}
	s.orders[o.ID()] = clone(o, o.Version()+1)
	return nil
}

func (s *orderStore) Get(_ context.Context, id kernel.UUID) (*order.Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[id]
	if !ok {
		return nil, false, nil
	}
	return clone(stored, stored.Version()), true, nil
}

func (s *orderStore) GetAllByEmail(_ context.Context, email string) ([]*order.Order, error) {
	return s.filter(func(o *order.Order) bool { return o.Email() == email }), nil
}

func (s *orderStore) GetRecentByEmail(ctx context.Context, email string, limit int) ([]*order.Order, error) {
	all, _ := s.GetAllByEmail(ctx, email)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *orderStore) GetAllByDeliveryStatusIn(
	_ context.Context,
	statuses ...order.DeliveryStatus,
) ([]*order.Order, []ports.UnreadableOrder, error) {
	return s.filter(func(o *order.Order) bool { return slices.Contains(statuses, o.DeliveryStatus()) }), nil, nil
}

func (s *orderStore) GetAll(_ context.Context) ([]*order.Order, error) {
	return s.filter(func(*order.Order) bool { return true }), nil
}

// filter returns matching orders, newest insert first.
func (s *orderStore) filter(match func(*order.Order) bool) []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*order.Order, 0)
	for i := len(s.ids) - 1; i >= 0; i-- {
		stored := s.orders[s.ids[i]]
		if match(stored) {
			result = append(result, clone(stored, stored.Version()))
		}
	}
	return result
}

type storeUoW struct {
	store *orderStore
}

func (u storeUoW) Begin(context.Context) error    { return nil }
func (u storeUoW) Commit(context.Context) error   { return nil }
func (u storeUoW) Rollback(context.Context) error { return nil }

func (u storeUoW) OrderRepository() ports.OrderRepository { return u.store }

func clone(o *order.Order, version int) *order.Order {
	c, err := order.RestoreOrder(
		o.ID(), o.Email(), o.Address(), o.OrderDate(), o.Lines(), o.Status(), o.DeliveryStatus(), version,
	)
	if err != nil {
		panic(err)
	}
	return c
}

type silentNotifier struct{}

func (silentNotifier) Send(context.Context, order.Notification) error { return nil }

type stubPassRunner struct {
	report commands.DeliveryPassReport
	err    error
	calls  int
}

func (r *stubPassRunner) RunOnce(context.Context) (commands.DeliveryPassReport, error) {
	r.calls++
	return r.report, r.err
}
