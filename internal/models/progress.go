package models

import "time"

// ProgressRecord — прогресс подписчика по одному дню программы.
// Completed и Unlocked меняются только с false на true.
type ProgressRecord struct {
	SubscriberID string     `json:"subscriber_id"`
	Day          int        `json:"day"`
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Unlocked     bool       `json:"unlocked"`
}

// NewProgressRecord проверяет строку хранилища: номер дня положительный,
// а пройденный день обязан иметь время прохождения.
func NewProgressRecord(subscriberID string, day int, completed bool, completedAt *time.Time, unlocked bool) (*ProgressRecord, error) {
	if subscriberID == "" || day < 1 {
		return nil, ErrProgressNotFound
	}
	if completed && completedAt == nil {
		return nil, ErrProgressNotFound
	}
	return &ProgressRecord{
		SubscriberID: subscriberID,
		Day:          day,
		Completed:    completed,
		CompletedAt:  completedAt,
		Unlocked:     unlocked,
	}, nil
}

// Completion описывает результат отметки дня пройденным.
type Completion struct {
	Day         int       `json:"day"`
	CompletedAt time.Time `json:"completed_at"`
	// UnlockedDay — номер открытого следующего дня, 0 если программа закончилась.
	UnlockedDay int `json:"unlocked_day,omitempty"`
}
