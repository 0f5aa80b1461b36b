package models

import "time"

// Источники события открытия дня.
const (
	UnlockSourceCompletion = "completion"
	UnlockSourceSchedule   = "schedule"
)

// DayUnlockedEvent публикуется в RabbitMQ, когда подписчику открывается новый день.
type DayUnlockedEvent struct {
	SubscriberID string    `json:"subscriber_id"`
	Email        string    `json:"email,omitempty"`
	Day          int       `json:"day"`
	Source       string    `json:"source"`
	OccurredAt   time.Time `json:"occurred_at"`
}
