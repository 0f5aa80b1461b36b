// Package access — единая точка проверки доступа к дням программы.
// Все обработчики, отдающие материалы дня, идут через Service.
package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/estrella-del-alba/internal/entitlement"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/metrics"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/sl"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

// SubscriberReader читает профиль подписчика.
type SubscriberReader interface {
	GetSubscriber(ctx context.Context, id string) (*models.Subscriber, error)
}

// Ledger — часть журнала прогресса, нужная для открытия дня.
type Ledger interface {
	GetRecord(ctx context.Context, subscriberID string, day int) (*models.ProgressRecord, error)
	EnsureUnlocked(ctx context.Context, subscriberID string, day int) error
}

// ContentReader возвращает материалы дня.
type ContentReader interface {
	Get(ctx context.Context, day int) (*models.ContentDay, error)
}

// Service проверяет доступ и открывает материалы дня.
type Service struct {
	subscribers SubscriberReader
	evaluator   *entitlement.Evaluator
	ledger      Ledger
	content     ContentReader
	metrics     *metrics.Metrics
	log         *slog.Logger
	now         func() time.Time
}

// New создаёт Service.
func New(subscribers SubscriberReader, evaluator *entitlement.Evaluator, ledger Ledger,
	content ContentReader, m *metrics.Metrics, log *slog.Logger) *Service {
	return &Service{
		subscribers: subscribers,
		evaluator:   evaluator,
		ledger:      ledger,
		content:     content,
		metrics:     m,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Check возвращает решение о доступе к дню. Отсутствующий или неполный
// профиль даёт отказ с причиной profile_incomplete, а не ошибку.
func (s *Service) Check(ctx context.Context, subscriberID string, day int) (entitlement.Decision, error) {
	const op = "access.Check"

	sub, err := s.subscribers.GetSubscriber(ctx, subscriberID)
	if err != nil {
		if !errors.Is(err, models.ErrSubscriberNotFound) && !errors.Is(err, models.ErrProfileIncomplete) {
			return entitlement.Decision{}, models.StoreError(op, err)
		}
		sub = nil
	}

	decision, err := s.evaluator.Evaluate(sub, day, s.now())
	if err != nil {
		return entitlement.Decision{}, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.ObserveAccess(decision.Allowed, string(decision.Reason))
	return decision, nil
}

// OpenDay отдаёт материалы дня, если доступ разрешён и по тарифу, и по журналу.
// Отказ возвращается доменной ошибкой причины (models.ErrPlanRestricted и т.п.).
func (s *Service) OpenDay(ctx context.Context, subscriberID string, day int) (*models.ContentDay, error) {
	const op = "access.OpenDay"
	log := s.log.With(slog.String("op", op), sl.Subscriber(subscriberID), sl.Day(day))

	decision, err := s.Check(ctx, subscriberID, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !decision.Allowed {
		log.Debug("access denied", slog.String("reason", string(decision.Reason)))
		return nil, fmt.Errorf("%s: %w", op, decision.Reason.Err())
	}

	rec, err := s.ledger.GetRecord(ctx, subscriberID, day)
	if err != nil && !errors.Is(err, models.ErrProgressNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if rec == nil || !rec.Unlocked {
		if err := s.ledger.EnsureUnlocked(ctx, subscriberID, day); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	content, err := s.content.Get(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return content, nil
}
