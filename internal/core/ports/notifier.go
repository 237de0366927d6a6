package ports

import "context"

// Notifier publishes domain events to a topic. Publishing is
// fire-and-forget: delivery failures are logged by the adapter, never
// surfaced to the publishing use case. Topic subscription and its
// authorization live at the transport boundary.
type Notifier interface {
	Publish(ctx context.Context, topic string, payload any)
}

// Subscriber joins a topic and streams its raw payloads. Cancel the context
// to leave the topic and close the returned channel.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan []byte, error)
}
