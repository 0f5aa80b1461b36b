// Package scheduler раз в сутки сообщает премиум-подписчикам, что им открылся
// новый день по времени. Журнал прогресса при этом не меняется: день
// фиксируется в журнале, когда подписчик его откроет.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/estrella-del-alba/internal/entitlement"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/sl"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

// SubscriberRepository ищет подписчиков, у которых программа ещё идёт.
type SubscriberRepository interface {
	ListPremiumEnrolledSince(ctx context.Context, since time.Time) ([]*models.Subscriber, error)
}

// EventPublisher публикует события об открытии дней.
type EventPublisher interface {
	PublishDayUnlocked(ctx context.Context, event models.DayUnlockedEvent) error
}

// Service рассылает события об открытии дней по времени.
type Service struct {
	repo      SubscriberRepository
	evaluator *entitlement.Evaluator
	publisher EventPublisher
	log       *slog.Logger
	now       func() time.Time
}

// New создает новый экземпляр Service.
func New(repo SubscriberRepository, evaluator *entitlement.Evaluator, publisher EventPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		evaluator: evaluator,
		publisher: publisher,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run вызывает AnnounceElapsedUnlocks сразу и затем каждые interval, пока не отменён ctx.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	s.runOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Service) runOnce(ctx context.Context) {
	if _, err := s.AnnounceElapsedUnlocks(ctx); err != nil {
		s.log.Error("failed to announce elapsed unlocks", sl.Err(err))
	}
}

// AnnounceElapsedUnlocks публикует событие для каждого премиум-подписчика,
// которому сегодня открылся день 2 или позже. Возвращает число событий.
func (s *Service) AnnounceElapsedUnlocks(ctx context.Context) (int, error) {
	const op = "scheduler.AnnounceElapsedUnlocks"
	log := s.log.With(slog.String("op", op))

	now := s.now()
	total := s.evaluator.Program().TotalDays
	since := models.DateOf(now).AddDate(0, 0, -(total - 1))

	log.Info("starting elapsed unlock announcement", slog.Time("since", since))
	subs, err := s.repo.ListPremiumEnrolledSince(ctx, since)
	if err != nil {
		return 0, models.StoreError(op, err)
	}
	if len(subs) == 0 {
		log.Info("no active premium subscribers found")
		return 0, nil
	}

	published := 0
	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return published, fmt.Errorf("%s: %w", op, err)
		}
		decision, err := s.evaluator.Evaluate(sub, 1, now)
		if err != nil || !decision.Allowed || decision.MaxDay < 2 {
			continue
		}
		event := models.DayUnlockedEvent{
			SubscriberID: sub.ID,
			Email:        sub.Email,
			Day:          decision.MaxDay,
			Source:       models.UnlockSourceSchedule,
			OccurredAt:   now,
		}
		if err := s.publisher.PublishDayUnlocked(ctx, event); err != nil {
			log.Error("failed to publish message", sl.Subscriber(sub.ID), sl.Err(err))
			continue
		}
		published++
	}
	log.Info("elapsed unlocks announced", slog.Int("count", published))
	return published, nil
}
