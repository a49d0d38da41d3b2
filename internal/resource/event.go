package resource

const (
	UpdatedEvent EventType = "updated"
	ResetEvent   EventType = "reset"
)

type (
	// EventType identifies the type of event
	EventType string

	// Event represents an event in the lifecycle of a resource
	Event[T any] struct {
		Type    EventType
		Payload T
	}

	// Publisher publishes events.
	Publisher[T any] interface {
		Publish(EventType, T)
	}
)

func NewEvent[T any](t EventType, payload T) Event[T] {
	return Event[T]{Type: t, Payload: payload}
}

type nopPublisher[T any] struct{}

func (nopPublisher[T]) Publish(EventType, T) {}
