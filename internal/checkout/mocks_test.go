package checkout

import (
	"context"
	"sync"

	"github.com/hung-0621/Book-Trade-APP/internal/catalog"
	"github.com/hung-0621/Book-Trade-APP/internal/money"
	"github.com/hung-0621/Book-Trade-APP/internal/orders"
)

// MockOrderClient implements orders.Client for testing.
type MockOrderClient struct {
	mu          sync.Mutex
	Ack         orders.Ack
	Err         error
	calls       int
	lastRequest orders.CreateOrderRequest

	// When set, CreateOrder signals Started once and then blocks until
	// Release is closed, so tests can hold a submission in flight.
	Started chan struct{}
	Release chan struct{}
}

func (m *MockOrderClient) CreateOrder(_ context.Context, req orders.CreateOrderRequest) (orders.Ack, error) {
	m.mu.Lock()
	m.calls++
	m.lastRequest = req
	started := m.Started
	m.Started = nil
	m.mu.Unlock()

	if started != nil {
		close(started)
	}
	if m.Release != nil {
		<-m.Release
	}

	if m.Err != nil {
		return orders.Ack{}, m.Err
	}
	return m.Ack, nil
}

func (m *MockOrderClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockOrderClient) LastRequest() orders.CreateOrderRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

func testItem(id string, price int64) catalog.Item {
	return catalog.Item{
		ID:     id,
		Name:   "book-" + id,
		Author: "author-" + id,
		Price:  money.New(price, money.TWD),
	}
}

// testLookup builds a Lookup over a fixed set of items.
func testLookup(items ...catalog.Item) Lookup {
	byID := make(map[string]catalog.Item, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return func(id string) (catalog.Item, bool) {
		item, ok := byID[id]
		return item, ok
	}
}
