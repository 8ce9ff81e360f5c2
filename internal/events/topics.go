package events

// Topic constants for domain events emitted by the platform.
const (
	TopicCheckoutCompleted     = "checkout.completed"
	TopicOrderCreated          = "order.created"
	TopicOrderStatusChanged    = "order.status_changed"
	TopicOrderCanceled         = "order.canceled"
	TopicOrderGroupCanceled    = "order.group_canceled"
	TopicDeliveryStatusChanged = "delivery.status_changed"
	TopicOrderTotalsChanged    = "order.totals_changed"
)

// DefaultTopics returns the canonical list of topics delivered to the webhook.
func DefaultTopics() []string {
	return []string{
		TopicCheckoutCompleted,
		TopicOrderCreated,
		TopicOrderStatusChanged,
		TopicOrderCanceled,
		TopicOrderGroupCanceled,
		TopicDeliveryStatusChanged,
		TopicOrderTotalsChanged,
	}
}
