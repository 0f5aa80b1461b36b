// Package entitlement решает, можно ли подписчику открыть день программы
// прямо сейчас. Решение зависит только от тарифа, даты начала программы и
// текущего времени, поэтому пересчитывается при каждом запросе и не кешируется.
package entitlement

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

// Reason — причина отказа в доступе.
type Reason string

const (
	// ReasonNone — доступ разрешён.
	ReasonNone Reason = ""
	// ReasonNotYetUnlocked — день откроется позже, «возвращайтесь завтра».
	ReasonNotYetUnlocked Reason = "not_yet_unlocked"
	// ReasonPlanRestricted — нужен платный тариф.
	ReasonPlanRestricted Reason = "plan_restricted"
	// ReasonProfileIncomplete — в профиле нет тарифа или даты начала.
	ReasonProfileIncomplete Reason = "profile_incomplete"
)

// Err возвращает доменную ошибку, соответствующую причине отказа.
func (r Reason) Err() error {
	switch r {
	case ReasonNotYetUnlocked:
		return models.ErrNotYetUnlocked
	case ReasonPlanRestricted:
		return models.ErrPlanRestricted
	case ReasonProfileIncomplete:
		return models.ErrProfileIncomplete
	}
	return nil
}

// Decision — результат проверки доступа к дню.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason,omitempty"`
	// MaxDay — последний доступный сейчас день, 0 если не доступен ни один.
	MaxDay int `json:"max_day"`
}

const day = 24 * time.Hour

// Evaluator проверяет доступ к дням программы фиксированной длины.
type Evaluator struct {
	program models.Program
}

// New создаёт Evaluator для программы.
func New(program models.Program) *Evaluator {
	return &Evaluator{program: program}
}

// Program возвращает программу, для которой считается доступ.
func (e *Evaluator) Program() models.Program {
	return e.program
}

// Evaluate проверяет доступ подписчика к дню d в момент now.
// Номер дня вне программы — ошибка вызывающего, такое не оценивается.
func (e *Evaluator) Evaluate(sub *models.Subscriber, d int, now time.Time) (Decision, error) {
	const op = "entitlement.Evaluate"
	if !e.program.Contains(d) {
		return Decision{}, fmt.Errorf("%s: %w: %d", op, models.ErrDayOutOfRange, d)
	}
	if sub == nil || sub.Plan == "" || sub.EnrollmentStartDate.IsZero() {
		return denied(ReasonProfileIncomplete, 0), nil
	}

	switch sub.Plan {
	case models.PlanFree:
		if d == 1 {
			return allowed(1), nil
		}
		return denied(ReasonPlanRestricted, 1), nil
	case models.PlanPremium:
		maxDay := min(ElapsedDays(sub.EnrollmentStartDate, now)+1, e.program.TotalDays)
		if d <= maxDay {
			return allowed(maxDay), nil
		}
		return denied(ReasonNotYetUnlocked, maxDay), nil
	}
	return denied(ReasonProfileIncomplete, 0), nil
}

// ElapsedDays считает полные сутки между началом программы и now.
// Если now раньше начала, возвращается 0.
func ElapsedDays(start, now time.Time) int {
	elapsed := now.Sub(start)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / day)
}

func allowed(maxDay int) Decision {
	return Decision{Allowed: true, MaxDay: maxDay}
}

func denied(reason Reason, maxDay int) Decision {
	return Decision{Allowed: false, Reason: reason, MaxDay: maxDay}
}
