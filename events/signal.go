// ABOUTME: In-memory fan-out signal for zero-payload change notifications
// ABOUTME: Subscribers get a buffered channel; emissions never block the emitter

package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

const (
	// signalBufferSize is the channel buffer for each subscriber. Emissions
	// beyond the buffer are dropped for that subscriber; since the signal
	// carries no payload, a pending emission already tells the subscriber
	// everything a dropped one would.
	signalBufferSize = 16
)

// Signal is a thread-safe, zero-payload event source. Firing it means
// "re-evaluate whatever you derived from me," not "here is the new value."
type Signal struct {
	mu          sync.RWMutex
	subscribers map[string]chan struct{}
}

// NewSignal creates an empty signal with no subscribers.
func NewSignal() *Signal {
	return &Signal{
		subscribers: make(map[string]chan struct{}),
	}
}

// Subscribe registers a listener and returns its channel and subscription ID.
// The subscription is automatically removed when ctx is cancelled. The
// channel is never closed; listeners that also watch ctx.Done() will not
// leak.
func (s *Signal) Subscribe(ctx context.Context) (<-chan struct{}, string) {
	subID := uuid.New().String()
	ch := make(chan struct{}, signalBufferSize)

	s.mu.Lock()
	s.subscribers[subID] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.Unsubscribe(subID)
	}()

	return ch, subID
}

// Unsubscribe removes a subscription by ID. Unknown IDs are ignored.
func (s *Signal) Unsubscribe(subID string) {
	s.mu.Lock()
	delete(s.subscribers, subID)
	s.mu.Unlock()
}

// Emit delivers one notification to every subscriber. Non-blocking: the
// notification is dropped for subscribers whose channels are full.
func (s *Signal) Emit() {
	s.mu.RLock()
	targets := make([]chan struct{}, 0, len(s.subscribers))
	for _, ch := range s.subscribers {
		targets = append(targets, ch)
	}
	s.mu.RUnlock()

	for _, ch := range targets {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscriptions.
func (s *Signal) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}
