// Package progress ведёт журнал прохождения программы: какие дни подписчику
// открыты и какие он уже прошёл. Отметка дня пройденным открывает следующий
// день в той же транзакции хранилища.
package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/estrella-del-alba/internal/cache"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/metrics"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/sl"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

// Repository — операции хранилища над журналом прогресса.
type Repository interface {
	// HasProgress сообщает, есть ли у подписчика хотя бы одна запись.
	HasProgress(ctx context.Context, subscriberID string) (bool, error)
	// InsertProgressIfAbsent вставляет запись, если её ещё нет.
	InsertProgressIfAbsent(ctx context.Context, rec models.ProgressRecord) (bool, error)
	// GetProgress возвращает запись за день.
	GetProgress(ctx context.Context, subscriberID string, day int) (*models.ProgressRecord, error)
	// UnlockDay открывает день, создавая запись при необходимости.
	UnlockDay(ctx context.Context, subscriberID string, day int) (bool, error)
	// CompleteDay отмечает день пройденным и открывает nextDay в одной транзакции.
	CompleteDay(ctx context.Context, subscriberID string, day int, completedAt time.Time, nextDay int) (bool, bool, error)
	// ListProgress возвращает записи по возрастанию дня.
	ListProgress(ctx context.Context, subscriberID string) ([]*models.ProgressRecord, error)
}

// SubscriberReader нужен, чтобы приложить email к событию открытия дня.
type SubscriberReader interface {
	GetSubscriber(ctx context.Context, id string) (*models.Subscriber, error)
}

// Cache описывает методы для кеширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// EventPublisher публикует события об открытии дней.
type EventPublisher interface {
	PublishDayUnlocked(ctx context.Context, event models.DayUnlockedEvent) error
}

// Service реализует журнал прогресса.
type Service struct {
	repo        Repository
	subscribers SubscriberReader
	cache       Cache
	publisher   EventPublisher
	metrics     *metrics.Metrics
	program     models.Program
	cacheTTL    time.Duration
	log         *slog.Logger
	now         func() time.Time
}

// New создаёт Service. subscribers, publisher и m могут быть nil.
func New(repo Repository, subscribers SubscriberReader, cache Cache, publisher EventPublisher,
	m *metrics.Metrics, program models.Program, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		subscribers: subscribers,
		cache:       cache,
		publisher:   publisher,
		metrics:     m,
		program:     program,
		cacheTTL:    cacheTTL,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// InitializeIfAbsent заводит журнал подписчика с открытым первым днём.
// Повторный вызов ничего не меняет.
func (s *Service) InitializeIfAbsent(ctx context.Context, subscriberID string) error {
	const op = "progress.InitializeIfAbsent"
	log := s.log.With(slog.String("op", op), sl.Subscriber(subscriberID))

	exists, err := s.repo.HasProgress(ctx, subscriberID)
	if err != nil {
		return models.StoreError(op, err)
	}
	if exists {
		log.Debug("progress already initialized")
		return nil
	}

	inserted, err := s.repo.InsertProgressIfAbsent(ctx, models.ProgressRecord{
		SubscriberID: subscriberID,
		Day:          1,
		Unlocked:     true,
	})
	if err != nil {
		return models.StoreError(op, err)
	}
	if inserted {
		log.Info("progress initialized")
		s.invalidate(log, subscriberID)
	}
	return nil
}

// RecordCompletion отмечает день пройденным и открывает следующий.
// Нет записи — models.ErrProgressNotFound без записи в хранилище.
// День уже пройден — models.ErrAlreadyCompleted, время прохождения не меняется,
// но открытие следующего дня всё равно применяется.
func (s *Service) RecordCompletion(ctx context.Context, subscriberID string, day int) (models.Completion, error) {
	const op = "progress.RecordCompletion"
	log := s.log.With(slog.String("op", op), sl.Subscriber(subscriberID), sl.Day(day))

	if !s.program.Contains(day) {
		return models.Completion{}, fmt.Errorf("%s: %w: %d", op, models.ErrDayOutOfRange, day)
	}

	rec, err := s.repo.GetProgress(ctx, subscriberID, day)
	if err != nil {
		if errors.Is(err, models.ErrProgressNotFound) {
			s.metrics.ObserveCompletion("not_found")
			log.Warn("completion for missing progress record")
		}
		return models.Completion{}, models.StoreError(op, err)
	}

	nextDay := 0
	if s.program.Contains(day + 1) {
		nextDay = day + 1
	}
	now := s.now()

	completedNow, unlockedNext, err := s.repo.CompleteDay(ctx, subscriberID, day, now, nextDay)
	if err != nil {
		s.metrics.ObserveCompletion("error")
		return models.Completion{}, models.StoreError(op, err)
	}
	if unlockedNext || completedNow {
		s.invalidate(log, subscriberID)
	}
	if unlockedNext {
		s.metrics.ObserveUnlock(models.UnlockSourceCompletion)
		s.announce(ctx, log, subscriberID, nextDay, models.UnlockSourceCompletion, now)
	}

	if !completedNow {
		s.metrics.ObserveCompletion("already_completed")
		completion := models.Completion{Day: day}
		if rec.CompletedAt != nil {
			completion.CompletedAt = *rec.CompletedAt
		}
		log.Info("day already completed")
		return completion, fmt.Errorf("%s: %w", op, models.ErrAlreadyCompleted)
	}

	s.metrics.ObserveCompletion("completed")
	log.Info("day completed", slog.Int("unlocked_day", nextDay))
	return models.Completion{Day: day, CompletedAt: now, UnlockedDay: nextDay}, nil
}

// EnsureUnlocked фиксирует в журнале день, который уже открыт по времени.
// Решение о доступе принимает вызывающий.
func (s *Service) EnsureUnlocked(ctx context.Context, subscriberID string, day int) error {
	const op = "progress.EnsureUnlocked"
	log := s.log.With(slog.String("op", op), sl.Subscriber(subscriberID), sl.Day(day))

	if !s.program.Contains(day) {
		return fmt.Errorf("%s: %w: %d", op, models.ErrDayOutOfRange, day)
	}

	unlocked, err := s.repo.UnlockDay(ctx, subscriberID, day)
	if err != nil {
		return models.StoreError(op, err)
	}
	if unlocked {
		s.metrics.ObserveUnlock(models.UnlockSourceSchedule)
		log.Info("day unlocked by elapsed time")
		s.invalidate(log, subscriberID)
	}
	return nil
}

// GetRecord возвращает запись журнала за день.
func (s *Service) GetRecord(ctx context.Context, subscriberID string, day int) (*models.ProgressRecord, error) {
	const op = "progress.GetRecord"
	rec, err := s.repo.GetProgress(ctx, subscriberID, day)
	if err != nil {
		return nil, models.StoreError(op, err)
	}
	return rec, nil
}

// ListProgress возвращает журнал подписчика по возрастанию дня, используя кеш.
func (s *Service) ListProgress(ctx context.Context, subscriberID string) ([]*models.ProgressRecord, error) {
	const op = "progress.ListProgress"
	log := s.log.With(slog.String("op", op), sl.Subscriber(subscriberID))
	key := cache.ProgressKey(subscriberID)

	var cached []*models.ProgressRecord
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		log.Warn("failed to read progress from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	records, err := s.repo.ListProgress(ctx, subscriberID)
	if err != nil {
		return nil, models.StoreError(op, err)
	}
	if err := s.cache.Set(key, records, s.cacheTTL); err != nil {
		log.Warn("failed to add progress to cache", slog.String("key", key), sl.Err(err))
	}
	return records, nil
}

func (s *Service) invalidate(log *slog.Logger, subscriberID string) {
	key := cache.ProgressKey(subscriberID)
	if err := s.cache.Invalidate(key); err != nil {
		log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
	}
}

// announce публикует событие открытия дня. Ошибки только логируются.
func (s *Service) announce(ctx context.Context, log *slog.Logger, subscriberID string, day int, source string, at time.Time) {
	if s.publisher == nil {
		return
	}
	event := models.DayUnlockedEvent{
		SubscriberID: subscriberID,
		Day:          day,
		Source:       source,
		OccurredAt:   at,
	}
	if s.subscribers != nil {
		sub, err := s.subscribers.GetSubscriber(ctx, subscriberID)
		switch {
		case err == nil:
			event.Email = sub.Email
		case !errors.Is(err, models.ErrSubscriberNotFound) && !errors.Is(err, models.ErrProfileIncomplete):
			log.Warn("failed to load subscriber email", sl.Err(err))
		}
	}
	if err := s.publisher.PublishDayUnlocked(ctx, event); err != nil {
		log.Error("failed to publish day unlocked event", sl.Err(err))
	}
}
