package services

// EventPublisher publishes domain events to the message broker. Satisfied by
// *rabbitmq.Client; tests substitute a mock. Publishing is best-effort: a
// broker failure is logged, never surfaced to the customer.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}
