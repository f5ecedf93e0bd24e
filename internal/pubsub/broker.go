package pubsub

import (
	"context"
	"sync"

	"github.com/padtext/pad/internal/resource"
)

// subBufferSize is the buffer size of the channel for each subscription.
const subBufferSize = 1024

// Logger is the subset of the pad logger used by the broker.
type Logger interface {
	Error(msg string, args ...any)
}

// Broker allows clients to publish events and subscribe to events
type Broker[T any] struct {
	subs map[chan resource.Event[T]]struct{} // subscriptions
	mu   sync.Mutex                          // sync access to map

	logger Logger
}

func NewBroker[T any](logger Logger) *Broker[T] {
	return &Broker[T]{
		subs:   make(map[chan resource.Event[T]]struct{}),
		logger: logger,
	}
}

// Subscribe subscribes the caller to a stream of events. The subscription is
// closed when the context is canceled.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan resource.Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(chan resource.Event[T], subBufferSize)
	b.subs[sub] = struct{}{}

	// when the context is canceled remove the subscriber
	go func() {
		<-ctx.Done()
		b.unsubscribe(sub)
	}()

	return sub
}

// Publish an event to subscribers.
func (b *Broker[T]) Publish(t resource.EventType, payload T) {
	var fullSubscribers []chan resource.Event[T]

	b.mu.Lock()
	for sub := range b.subs {
		select {
		case sub <- resource.NewEvent(t, payload):
			continue
		default:
			// could not publish event to subscriber because their buffer is
			// full, so add them to a list for action below
			fullSubscribers = append(fullSubscribers, sub)
		}
	}
	b.mu.Unlock()

	// forceably unsubscribe full subscribers
	for _, sub := range fullSubscribers {
		if b.logger != nil {
			b.logger.Error("unsubscribing full subscriber", "queue_length", subBufferSize)
		}
		b.unsubscribe(sub)
	}
}

func (b *Broker[T]) unsubscribe(sub chan resource.Event[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub]; !ok {
		// already unsubscribed
		return
	}
	close(sub)
	delete(b.subs, sub)
}
