package models

import (
	"errors"
	"fmt"
)

// Доменные ошибки. Сервисы возвращают их (обёрнутыми через %w), а HTTP-слой
// выбирает по ним код ответа через errors.Is.
var (
	// ErrProfileIncomplete — у профиля нет тарифа или даты начала программы.
	ErrProfileIncomplete = errors.New("profile incomplete")
	// ErrPlanRestricted — день недоступен на текущем тарифе.
	ErrPlanRestricted = errors.New("plan restricted")
	// ErrNotYetUnlocked — день откроется позже.
	ErrNotYetUnlocked = errors.New("not yet unlocked")
	// ErrProgressNotFound — записи прогресса за этот день нет.
	ErrProgressNotFound = errors.New("progress record not found")
	// ErrAlreadyCompleted — день уже отмечен пройденным.
	ErrAlreadyCompleted = errors.New("day already completed")
	// ErrStoreUnavailable — хранилище не ответило.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrDayOutOfRange — номер дня вне программы.
	ErrDayOutOfRange = errors.New("day out of range")
	// ErrContentNotFound — для дня нет материалов.
	ErrContentNotFound = errors.New("content not found")
	// ErrSubscriberNotFound — профиль подписчика не найден.
	ErrSubscriberNotFound = errors.New("subscriber not found")
	// ErrAlreadyEnrolled — профиль уже создан, дата начала не меняется.
	ErrAlreadyEnrolled = errors.New("subscriber already enrolled")
	// ErrInvalidPlan — неизвестное значение тарифа.
	ErrInvalidPlan = errors.New("invalid plan")
)

var domainErrors = []error{
	ErrProfileIncomplete,
	ErrPlanRestricted,
	ErrNotYetUnlocked,
	ErrProgressNotFound,
	ErrAlreadyCompleted,
	ErrStoreUnavailable,
	ErrDayOutOfRange,
	ErrContentNotFound,
	ErrSubscriberNotFound,
	ErrAlreadyEnrolled,
	ErrInvalidPlan,
}

// IsDomain сообщает, несёт ли err одну из доменных ошибок.
func IsDomain(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// StoreError оборачивает ошибку хранилища для слоя сервисов: доменные ошибки
// проходят как есть, остальные становятся ErrStoreUnavailable с исходной причиной.
func StoreError(op string, err error) error {
	if IsDomain(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
