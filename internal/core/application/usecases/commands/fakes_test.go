package commands_test

import (
	"context"
	"slices"
	"sync"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory order store with version checks. Every Create
// hands out a unit of work over the same data; transactions are not modeled.
type memoryStore struct {
	mu            sync.Mutex
	ids           []kernel.UUID
	orders        map[kernel.UUID]*order.Order
	failUpdates   map[kernel.UUID]error
	beforeUpdates map[kernel.UUID]func(stored *order.Order) *order.Order
	unreadable    []ports.UnreadableOrder
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		orders:        make(map[kernel.UUID]*order.Order),
		failUpdates:   make(map[kernel.UUID]error),
		beforeUpdates: make(map[kernel.UUID]func(stored *order.Order) *order.Order),
	}
}

func (s *memoryStore) Create() commands.OrderUoW {
	return memoryUoW{store: s}
}

func (s *memoryStore) put(t *testing.T, o *order.Order) {
	t.Helper()
	require.NoError(t, s.Add(t.Context(), o))
}

func (s *memoryStore) failUpdate(id kernel.UUID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failUpdates[id] = err
}

// interfere lets another writer replace the stored order right before the
// next Update of id. The replacement is stored with a bumped version.
func (s *memoryStore) interfere(id kernel.UUID, write func(stored *order.Order) *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beforeUpdates[id] = write
}

// putUnreadable adds a matching row that cannot be restored.
func (s *memoryStore) putUnreadable(id kernel.UUID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unreadable = append(s.unreadable, ports.UnreadableOrder{ID: id, Err: err})
}

func (s *memoryStore) snapshot(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	o, found, err := s.Get(t.Context(), id)
	require.NoError(t, err)
	require.True(t, found)
	return o
}

func (s *memoryStore) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = append(s.ids, o.ID())
	s.orders[o.ID()] = cloneOrder(o, 0)
	return nil
}

func (s *memoryStore) Update(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.failUpdates[o.ID()]; ok {
		return err
	}

	stored, ok := s.orders[o.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("orderId", o.ID().String())
	}
	if write, ok := s.beforeUpdates[o.ID()]; ok {
		delete(s.beforeUpdates, o.ID())
		stored = cloneOrder(write(cloneOrder(stored, stored.Version())), stored.Version()+1)
		s.orders[o.ID()] = stored
	}
	if stored.Version() != o.Version() {
		return errs.NewVersionIsInvalidError("version")
	}

	s.orders[o.ID()] = cloneOrder(o, o.Version()+1)
	return nil
}

func (s *memoryStore) Get(_ context.Context, id kernel.UUID) (*order.Order, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[id]
	if !ok {
		return nil, false, nil
	}
	return cloneOrder(stored, stored.Version()), true, nil
}

func (s *memoryStore) GetAllByEmail(_ context.Context, _ string) ([]*order.Order, error) {
	return nil, nil
}

func (s *memoryStore) GetRecentByEmail(_ context.Context, _ string, _ int) ([]*order.Order, error) {
	return nil, nil
}

func (s *memoryStore) GetAllByDeliveryStatusIn(
	_ context.Context,
	statuses ...order.DeliveryStatus,
) ([]*order.Order, []ports.UnreadableOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*order.Order, 0)
	for _, id := range s.ids {
		stored := s.orders[id]
		if slices.Contains(statuses, stored.DeliveryStatus()) {
			result = append(result, cloneOrder(stored, stored.Version()))
		}
	}
	return result, slices.Clone(s.unreadable), nil
}

func (s *memoryStore) GetAll(_ context.Context) ([]*order.Order, error) {
	return nil, nil
}

type memoryUoW struct {
	store *memoryStore
}

func (u memoryUoW) Begin(context.Context) error    { return nil }
func (u memoryUoW) Commit(context.Context) error   { return nil }
func (u memoryUoW) Rollback(context.Context) error { return nil }

func (u memoryUoW) OrderRepository() ports.OrderRepository {
	return u.store
}

func cloneOrder(o *order.Order, version int) *order.Order {
	c, err := order.RestoreOrder(
		o.ID(), o.Email(), o.Address(), o.OrderDate(), o.Lines(), o.Status(), o.DeliveryStatus(), version,
	)
	if err != nil {
		panic(err)
	}
	return c
}

// recordingNotifier keeps every notification it accepted and fails for the
// orders listed in failFor.
type recordingNotifier struct {
	mu      sync.Mutex
	sent    []order.Notification
	failFor map[kernel.UUID]error
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{failFor: make(map[kernel.UUID]error)}
}

func (n *recordingNotifier) Send(_ context.Context, notification order.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err, ok := n.failFor[notification.OrderID]; ok {
		return err
	}
	n.sent = append(n.sent, notification)
	return nil
}

func (n *recordingNotifier) notificationsFor(id kernel.UUID) []order.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	sent := make([]order.Notification, 0)
	for _, s := range n.sent {
		if s.OrderID.IsEqual(id) {
			sent = append(sent, s)
		}
	}
	return sent
}

func (n *recordingNotifier) sentTo(id kernel.UUID) []order.NotificationKind {
	n.mu.Lock()
	defer n.mu.Unlock()

	kinds := make([]order.NotificationKind, 0)
	for _, sent := range n.sent {
		if sent.OrderID.IsEqual(id) {
			kinds = append(kinds, sent.Kind)
		}
	}
	return kinds
}

func testAddress(t *testing.T) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress("Seoul", "Teheran-ro 427", "06159")
	require.NoError(t, err)
	return addr
}

func testLines(t *testing.T) []order.Line {
	t.Helper()
	first, err := order.NewLine(kernel.NewUUID(), "Colombia Supremo 500g", 1000, 2)
	require.NoError(t, err)
	second, err := order.NewLine(kernel.NewUUID(), "Kenya AA 200g", 1500, 1)
	require.NoError(t, err)
	return []order.Line{first, second}
}

func newTestOrder(t *testing.T, status order.OrderStatus, delivery order.DeliveryStatus) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "guest@example.com", testAddress(t), testLines(t))
	require.NoError(t, err)
	require.NoError(t, o.OverrideStatus(status))
	require.NoError(t, o.OverrideDeliveryStatus(delivery))
	return o
}
