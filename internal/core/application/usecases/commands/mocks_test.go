package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/domain/model/reel"
	"ordersync/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, productionOrder int) (*order.Order, error) {
	args := m.Called(ctx, productionOrder)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if orders, ok := args.Get(0).([]*order.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, productionOrder int, status order.Status) error {
	args := m.Called(ctx, productionOrder, status)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkStopped(ctx context.Context, productionOrder int, at time.Time) error {
	args := m.Called(ctx, productionOrder, at)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, productionOrder int, at time.Time) (int64, error) {
	args := m.Called(ctx, productionOrder, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GetRegistrationCandidates(ctx context.Context, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, limit)
	if orders, ok := args.Get(0).([]*order.Order); ok {
		return orders, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockReelEventRepository struct{ mock.Mock }

func (m *MockReelEventRepository) Add(ctx context.Context, e *reel.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockReelEventRepository) Get(ctx context.Context, messageID kernel.UUID) (*reel.Event, error) {
	args := m.Called(ctx, messageID)
	if e, ok := args.Get(0).(*reel.Event); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ReelEventRepository() ports.ReelEventRepository {
	args := m.Called()
	return args.Get(0).(ports.ReelEventRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() ports.UnitOfWork {
	args := m.Called()
	return args.Get(0).(ports.UnitOfWork)
}

type MockRemoteClient struct{ mock.Mock }

func (m *MockRemoteClient) GetOrder(ctx context.Context, productionOrder int) (ports.RemoteResponse, error) {
	args := m.Called(ctx, productionOrder)
	return args.Get(0).(ports.RemoteResponse), args.Error(1)
}

func (m *MockRemoteClient) CreateOrder(ctx context.Context, req ports.CreateOrderRequest) (ports.RemoteResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.RemoteResponse), args.Error(1)
}

func (m *MockRemoteClient) StartOrder(ctx context.Context, cmd ports.OrderCommand) (ports.RemoteResponse, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(ports.RemoteResponse), args.Error(1)
}

func (m *MockRemoteClient) StopOrder(ctx context.Context, cmd ports.OrderCommand) (ports.RemoteResponse, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(ports.RemoteResponse), args.Error(1)
}

func (m *MockRemoteClient) DeleteOrder(ctx context.Context, cmd ports.OrderCommand) (ports.RemoteResponse, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(ports.RemoteResponse), args.Error(1)
}

func (m *MockRemoteClient) CreateSet(ctx context.Context, req ports.CreateSetRequest) (ports.RemoteResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.RemoteResponse), args.Error(1)
}

func (m *MockRemoteClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// auditRecorder keeps every entry it receives.
type auditRecorder struct {
	mu      sync.Mutex
	entries []ports.AuditEntry
}

func (r *auditRecorder) Append(_ context.Context, entry ports.AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *auditRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

func (r *auditRecorder) last() ports.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[len(r.entries)-1]
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newOrderStore wires a factory whose units hand out repo.
func newOrderStore(repo *MockOrderRepository) *MockUoWFactory {
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(repo)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)
	return factory
}

func storedOrder(productionOrder int, status order.Status) *order.Order {
	return order.RestoreOrder(productionOrder, "S1", 7, 7, testNow, testNow, status, kernel.NewUUID())
}

func okResponse() ports.RemoteResponse {
	return ports.RemoteResponse{StatusCode: 200, Body: `{"result":"OK"}`, Parsed: true, Result: "OK"}
}
