package messaging

import "context"

// PublisherInterface is the event publishing contract the domain services
// depend on, so tests can swap in a capture.
type PublisherInterface interface {
	Publish(ctx context.Context, routingKey string, eventData interface{}) error
	Close() error
}

var _ PublisherInterface = (*Publisher)(nil)
