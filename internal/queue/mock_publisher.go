package queue

import (
	"context"
	"sync"
)

// MockPublisher records published events for tests.
type MockPublisher struct {
	mu     sync.RWMutex
	events []OrderCreatedEvent
	Err    error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		events: make([]OrderCreatedEvent, 0),
	}
}

func (m *MockPublisher) PublishOrderCreated(_ context.Context, event OrderCreatedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.events = append(m.events, event)
	return nil
}

// GetEvents returns a copy of all published events
func (m *MockPublisher) GetEvents() []OrderCreatedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]OrderCreatedEvent, len(m.events))
	copy(events, m.events)
	return events
}
