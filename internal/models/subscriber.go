// Package models содержит доменные структуры программы «Estrella del Alba»:
// профиль подписчика, записи прогресса по дням, материалы дня и события.
// Строки из хранилища превращаются в эти типы через конструкторы New*,
// которые отбрасывают неполные данные.
package models

import (
	"fmt"
	"time"
)

// Plan — уровень доступа подписчика.
type Plan string

const (
	// PlanFree — бесплатный тариф, доступен только первый день.
	PlanFree Plan = "free"
	// PlanPremium — платный тариф, по одному новому дню каждые сутки.
	PlanPremium Plan = "premium"
)

// PlanType — периодичность оплаты, не влияет на уровень доступа напрямую.
type PlanType string

const (
	PlanTypeFree           PlanType = "free"
	PlanTypePremiumMonthly PlanType = "premium-monthly"
	PlanTypePremiumAnnual  PlanType = "premium-annual"
)

// ParsePlan проверяет строковое значение тарифа.
func ParsePlan(s string) (Plan, error) {
	switch p := Plan(s); p {
	case PlanFree, PlanPremium:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPlan, s)
}

// ParsePlanType проверяет строковое значение периодичности оплаты.
func ParsePlanType(s string) (PlanType, error) {
	switch t := PlanType(s); t {
	case PlanTypeFree, PlanTypePremiumMonthly, PlanTypePremiumAnnual:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPlan, s)
}

// Plan возвращает уровень доступа, соответствующий периодичности оплаты.
func (t PlanType) Plan() Plan {
	if t == PlanTypeFree {
		return PlanFree
	}
	return PlanPremium
}

// Subscriber — профиль подписчика. EnrollmentStartDate задаётся один раз
// при создании профиля и дальше не меняется.
type Subscriber struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email,omitempty"`
	Plan                Plan      `json:"plan"`
	PlanType            PlanType  `json:"plan_type"`
	EnrollmentStartDate time.Time `json:"enrollment_start_date"`
	CreatedAt           time.Time `json:"created_at"`
}

// SubscriberRow — «сырая» строка профиля в том виде, в каком её отдаёт хранилище.
type SubscriberRow struct {
	ID                  string
	Email               *string
	Plan                *string
	PlanType            *string
	EnrollmentStartDate *time.Time
	CreatedAt           time.Time
}

// NewSubscriber валидирует строку хранилища и собирает из неё Subscriber.
func NewSubscriber(row SubscriberRow) (*Subscriber, error) {
	if row.ID == "" {
		return nil, ErrSubscriberNotFound
	}
	if row.Plan == nil || row.EnrollmentStartDate == nil || row.EnrollmentStartDate.IsZero() {
		return nil, ErrProfileIncomplete
	}
	plan, err := ParsePlan(*row.Plan)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfileIncomplete, err)
	}

	planType := PlanTypeFree
	if plan == PlanPremium {
		planType = PlanTypePremiumMonthly
	}
	if row.PlanType != nil && *row.PlanType != "" {
		planType, err = ParsePlanType(*row.PlanType)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrProfileIncomplete, err)
		}
	}

	sub := &Subscriber{
		ID:                  row.ID,
		Plan:                plan,
		PlanType:            planType,
		EnrollmentStartDate: DateOf(*row.EnrollmentStartDate),
		CreatedAt:           row.CreatedAt,
	}
	if row.Email != nil {
		sub.Email = *row.Email
	}
	return sub, nil
}

// DateOf отбрасывает время суток и приводит момент к календарной дате в UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
