// Package pubsub provides a minimal process-local publish/subscribe broker.
// Delivery is synchronous and best-effort: a publish with no subscribers is
// dropped, and handlers run on the publisher's goroutine. Subscribers must
// cancel on teardown to avoid leaking handlers.
package pubsub

import "sync"

// Handler receives published payloads for a topic.
type Handler func(payload any)

// Broker routes payloads from publishers to topic subscribers.
type Broker struct {
	mu     sync.RWMutex
	nextID int
	topics map[string]map[int]Handler
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{topics: make(map[string]map[int]Handler)}
}

// Subscribe registers a handler for the topic and returns a cancel function
// that removes it. Cancel is idempotent.
func (b *Broker) Subscribe(topic string, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.topics[topic] == nil {
		b.topics[topic] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.topics[topic][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.topics[topic], id)
		if len(b.topics[topic]) == 0 {
			delete(b.topics, topic)
		}
	}
}

// Publish delivers payload to every current subscriber of topic and returns
// the number of handlers invoked. Handlers run synchronously; a handler that
// subscribes or cancels during delivery does not affect this publish.
func (b *Broker) Publish(topic string, payload any) int {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.topics[topic]))
	for _, h := range b.topics[topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(payload)
	}
	return len(handlers)
}

// SubscriberCount returns the number of active subscribers for topic.
func (b *Broker) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}
