// Package profile — создание профиля подписчика и смена тарифа.
// Оплата подтверждается снаружи, сюда приходит уже итоговый тариф.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/sl"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

// Repository хранит профили подписчиков.
type Repository interface {
	GetSubscriber(ctx context.Context, id string) (*models.Subscriber, error)
	CreateSubscriber(ctx context.Context, sub models.Subscriber) (bool, error)
	UpdatePlan(ctx context.Context, id string, plan models.Plan, planType models.PlanType) error
}

// LedgerInitializer заводит журнал прогресса нового подписчика.
type LedgerInitializer interface {
	InitializeIfAbsent(ctx context.Context, subscriberID string) error
}

// Service управляет профилями.
type Service struct {
	repo   Repository
	ledger LedgerInitializer
	log    *slog.Logger
	now    func() time.Time
}

// New создаёт Service.
func New(repo Repository, ledger LedgerInitializer, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		ledger: ledger,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Enroll создаёт профиль с датой начала программы «сегодня» (UTC) и открывает
// первый день. Повторный вызов возвращает models.ErrAlreadyEnrolled, дата начала
// не меняется, а журнал прогресса всё равно досоздаётся.
func (s *Service) Enroll(ctx context.Context, subscriberID, email string, planType models.PlanType) (*models.Subscriber, error) {
	const op = "profile.Enroll"
	log := s.log.With(slog.String("op", op), sl.Subscriber(subscriberID))

	sub := models.Subscriber{
		ID:                  subscriberID,
		Email:               email,
		Plan:                planType.Plan(),
		PlanType:            planType,
		EnrollmentStartDate: models.DateOf(s.now()),
	}
	created, err := s.repo.CreateSubscriber(ctx, sub)
	if err != nil {
		return nil, models.StoreError(op, err)
	}

	if err := s.ledger.InitializeIfAbsent(ctx, subscriberID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !created {
		log.Info("subscriber already enrolled")
		return nil, fmt.Errorf("%s: %w", op, models.ErrAlreadyEnrolled)
	}
	log.Info("subscriber enrolled", slog.String("plan", string(sub.Plan)))
	return s.Get(ctx, subscriberID)
}

// ChangePlan меняет тариф. Уровень доступа выводится из периодичности оплаты.
func (s *Service) ChangePlan(ctx context.Context, subscriberID string, planType models.PlanType) (*models.Subscriber, error) {
	const op = "profile.ChangePlan"
	log := s.log.With(slog.String("op", op), sl.Subscriber(subscriberID))

	if err := s.repo.UpdatePlan(ctx, subscriberID, planType.Plan(), planType); err != nil {
		return nil, models.StoreError(op, err)
	}
	log.Info("plan changed", slog.String("plan_type", string(planType)))
	return s.Get(ctx, subscriberID)
}

// Get возвращает профиль подписчика.
func (s *Service) Get(ctx context.Context, subscriberID string) (*models.Subscriber, error) {
	const op = "profile.Get"
	sub, err := s.repo.GetSubscriber(ctx, subscriberID)
	if err != nil {
		return nil, models.StoreError(op, err)
	}
	return sub, nil
}
