package rabbitmq

const (
	// ExchangeProgress — обменник событий прогресса.
	ExchangeProgress = "progress"
	// RoutingKeyDayUnlocked — ключ события «открыт новый день».
	RoutingKeyDayUnlocked = "day_unlocked"
	// QueueDayUnlocked — очередь, которую слушает отправщик писем.
	QueueDayUnlocked = "progress.day_unlocked"
)

// QueueConfig описывает очередь и ключ её привязки к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetProgressQueues возвращает очереди, которые нужно объявить при старте.
func GetProgressQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueDayUnlocked, RoutingKey: RoutingKeyDayUnlocked},
	}
}
