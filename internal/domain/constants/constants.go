// Package constants holds shared constant values used across layers.
package constants

// Pub/Sub provider types.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Order event types published through the EventPublisher.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderCancelled     = "order.cancelled"
)
