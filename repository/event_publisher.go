package repository

import (
	rabbitmq_client "estatebackend/clients/rabbitmq"
	"estatebackend/types"
)

// EventPublisher hands a persisted negotiation off to downstream workflow
// consumers. The publish is fire-and-forget; a failure never invalidates the
// computed strategy.
type EventPublisher interface {
	Publish(event types.NegotiationEvent) error
}

// AMQPPublisher publishes through the shared rabbitmq client.
type AMQPPublisher struct{}

func (AMQPPublisher) Publish(event types.NegotiationEvent) error {
	return rabbitmq_client.SendMessage(event)
}

// NoopPublisher drops events, for runs without a broker.
type NoopPublisher struct{}

func (NoopPublisher) Publish(event types.NegotiationEvent) error {
	return nil
}
