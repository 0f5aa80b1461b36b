// Package sl содержит вспомогательные атрибуты для логгера slog,
// чтобы ошибки и идентификаторы подписчика везде писались под одними ключами.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
//
// Пример:
//
//	log.Error("failed to record completion", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Subscriber возвращает атрибут с идентификатором подписчика.
func Subscriber(id string) slog.Attr {
	return slog.String("subscriber_id", id)
}

// Day возвращает атрибут с номером дня программы.
func Day(day int) slog.Attr {
	return slog.Int("day", day)
}
