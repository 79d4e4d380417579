// Package dispatch provides a small, instance-based event dispatcher used to
// announce application events (such as "extraction completed") to in-process
// subscribers. Each event name gets its own Dispatcher with a concrete payload
// type; there is no global instance and no untyped payloads, so independent
// components (and tests) can create as many dispatchers as they need.
package dispatch

import (
	"context"
	"sync"

	"noteref/pkg/logger"

	"go.uber.org/zap"
)

// Subscriber is a callback invoked for every published event. Subscribers run
// synchronously on the publishing goroutine and should return quickly.
type Subscriber[T any] func(ctx context.Context, event T)

// Dispatcher delivers events of type T to its subscribers in subscription
// order. Delivery is isolated per subscriber: a panic in one subscriber is
// recovered and logged, and the remaining subscribers still receive the
// event. The zero value is not usable; create instances with New.
type Dispatcher[T any] struct {
	// name identifies the event stream in logs.
	name string

	// mu guards subscribers. Publishing holds it in read mode, so subscribing
	// concurrently with a publish is safe; the new subscriber starts receiving
	// with the next event.
	mu          sync.RWMutex
	subscribers []Subscriber[T]
}

// New creates a Dispatcher for the event stream with the given name. The name
// is only used for logging and does not need to be unique across instances.
func New[T any](name string) *Dispatcher[T] {
	return &Dispatcher[T]{name: name}
}

// Subscribe registers fn to receive all events published after this call.
// Subscribers cannot be removed; create a fresh Dispatcher when a different
// subscriber set is needed.
func (d *Dispatcher[T]) Subscribe(fn Subscriber[T]) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.subscribers = append(d.subscribers, fn)
}

// Publish delivers event to every current subscriber, in subscription order,
// on the calling goroutine. A subscriber panic is recovered and logged so it
// cannot suppress delivery to later subscribers or crash the publisher.
func (d *Dispatcher[T]) Publish(ctx context.Context, event T) {
	d.mu.RLock()
	subs := d.subscribers
	d.mu.RUnlock()

	for i, fn := range subs {
		d.deliver(ctx, i, fn, event)
	}
}

func (d *Dispatcher[T]) deliver(ctx context.Context, i int, fn Subscriber[T], event T) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "event subscriber panicked",
				zap.String("event", d.name),
				zap.Int("subscriber", i),
				zap.Any("panic", p))
		}
	}()

	fn(ctx, event)
}
