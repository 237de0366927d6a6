package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Notifier publishes domain events over Redis pub/sub channels and lets
// transport adapters subscribe to them. Topics map one-to-one onto Redis
// channels, so delivery is fan-out to currently connected subscribers with
// no replay across restarts.
type Notifier struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewNotifier(client *redis.Client, log zerolog.Logger) *Notifier {
	return &Notifier{client: client, log: log}
}

// Publish serialises payload as JSON and publishes it on the topic.
// Fire-and-forget: failures are logged, never returned, so a broken broker
// cannot fail the state-change use case.
func (n *Notifier) Publish(ctx context.Context, topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		n.log.Error().Err(err).Str("topic", topic).Msg("failed to encode event payload")
		return
	}
	if err := n.client.Publish(ctx, topic, data).Err(); err != nil {
		n.log.Error().Err(err).Str("topic", topic).Msg("failed to publish event")
	}
}

// Subscribe joins a topic and streams raw payloads until ctx is cancelled.
func (n *Notifier) Subscribe(ctx context.Context, topic string) (<-chan []byte, error) {
	sub := n.client.Subscribe(ctx, topic)
	// Force the SUBSCRIBE round-trip so a dead connection fails here, not
	// silently in the receive loop.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
