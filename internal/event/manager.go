// internal/event/manager.go
package event

import (
	"sync"

	"github.com/bethropolis/tidecore/internal/logger"
)

// Handler defines the function signature for event subscribers.
// Returning true consumes the event; later handlers do not see it.
type Handler func(e Event) bool

// SubscriptionID identifies a subscription for Unsubscribe.
type SubscriptionID int

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]subscription
	nextID   SubscriptionID
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]subscription),
	}
}

// Subscribe adds a handler function for a specific event type.
func (m *Manager) Subscribe(eventType Type, handler Handler) SubscriptionID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.handlers[eventType] = append(m.handlers[eventType], subscription{id: m.nextID, handler: handler})
	logger.DebugTagf("event", "Event Manager: handler %d subscribed to %v", m.nextID, eventType)
	return m.nextID
}

// Unsubscribe removes a subscription. Unknown IDs are ignored.
func (m *Manager) Unsubscribe(id SubscriptionID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for t, subs := range m.handlers {
		for i, s := range subs {
			if s.id == id {
				m.handlers[t] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch sends an event to the handlers of its type, synchronously and
// in subscription order.
func (m *Manager) Dispatch(e Event) {
	m.mu.RLock()
	subs := make([]subscription, len(m.handlers[e.Type]))
	copy(subs, m.handlers[e.Type])
	m.mu.RUnlock()

	if len(subs) == 0 {
		return
	}
	logger.DebugTagf("event", "Event Manager: dispatching %v from %q to %d handler(s)", e.Type, e.Source, len(subs))

	// Handlers run on a copy so they may subscribe or unsubscribe.
	for _, s := range subs {
		if s.handler(e) {
			return
		}
	}
}
