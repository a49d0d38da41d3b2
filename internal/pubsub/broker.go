package pubsub

import (
	"context"
	"sync"

	"github.com/leg100/postie/internal/resource"
)

// subBufferSize is the buffer size of the channel for each subscription.
const subBufferSize = 1024

type Logger interface {
	Error(msg string, args ...any)
}

// Broker allows clients to publish events and subscribe to events
type Broker[T any] struct {
	subs map[chan resource.Event[T]]struct{} // subscriptions
	mu   sync.Mutex                          // sync access to map
	done bool

	logger Logger
}

func NewBroker[T any](logger Logger) *Broker[T] {
	return &Broker[T]{
		subs:   make(map[chan resource.Event[T]]struct{}),
		logger: logger,
	}
}

// Subscribe subscribes the caller to a stream of events. The subscription is
// closed when the context is canceled or the broker is shut down.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan resource.Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(chan resource.Event[T], subBufferSize)
	if b.done {
		close(sub)
		return sub
	}
	b.subs[sub] = struct{}{}

	go func() {
		<-ctx.Done()
		b.unsubscribe(sub)
	}()

	return sub
}

// Publish an event to subscribers. A subscriber whose buffer is full is
// unsubscribed rather than blocking the publisher.
func (b *Broker[T]) Publish(t resource.EventType, payload T) {
	var full []chan resource.Event[T]

	b.mu.Lock()
	for sub := range b.subs {
		select {
		case sub <- resource.NewEvent(t, payload):
		default:
			full = append(full, sub)
		}
	}
	b.mu.Unlock()

	for _, sub := range full {
		b.unsubscribe(sub)
		b.logger.Error("unsubscribed full subscriber", "queue_length", subBufferSize)
	}
}

// Shutdown closes all subscriptions. Subsequent subscriptions are closed
// immediately.
func (b *Broker[T]) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs {
		close(sub)
	}
	b.subs = make(map[chan resource.Event[T]]struct{})
	b.done = true
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
