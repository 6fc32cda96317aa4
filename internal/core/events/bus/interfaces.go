package bus

import "time"

// EventBus is a thread-safe, in-process pub/sub bus.
//
//   - Type-based fan-out: handlers subscribe by Event.Type().
//   - Synchronous delivery: Publish calls handlers on the caller goroutine, in
//     subscription order.
//   - Error aggregation: handler errors are joined and returned from Publish.
//   - Metrics are collected only while at least one observer is registered.
//
// Handlers should be quick; the tick loop publishes on its own goroutine and
// waits for delivery before the next tick starts.
type EventBus interface {
	// Publish delivers the event to every active subscriber of event.Type().
	Publish(event Event) error
	// Subscribe registers a handler for eventType.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the given Subscription. Nil is ignored.
	Unsubscribe(Subscription) error
	// PublishAsync publishes on a new goroutine. The returned channel receives
	// the joined handler error (or nil) and is then closed.
	PublishAsync(event Event) <-chan error

	AddObserver(obs Observer)
	RemoveObserver(obs Observer)
	// GetMetrics returns a best-effort snapshot of the counters.
	GetMetrics() Metrics
}

// Event is an immutable message transported by the bus.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

type (
	// EventHandler is invoked per delivered event.
	EventHandler func(event Event) error
)

// Subscription is a registered handler bound to an event type.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// Observer is notified about deliveries. Observers should return quickly.
type Observer interface {
	OnPublish(eventType string, event Event)
	OnDelivered(eventType string, handlers int, err error, elapsed time.Duration)
}

// Metrics is updated only while at least one observer is registered.
type Metrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}
