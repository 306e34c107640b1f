package events

import "time"

const (
	NotificationRequestedTopic     = "hr.notification.requested.v1"
	NotificationRequestedEventType = "notification_requested"
)

// NotificationRequestedEvent is written to the outbox in the same transaction as the
// state change it reports on, and delivered to a notification sink after commit.
type NotificationRequestedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	AggregateType string    `json:"aggregate_type"`
	AggregateID   string    `json:"aggregate_id"`
	Address       string    `json:"address"`
	Subject       string    `json:"subject"`
	Body          string    `json:"body"`
	OccurredAt    time.Time `json:"occurred_at"`
}
