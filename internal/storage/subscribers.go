package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

const subscriberColumns = `id, email, plan, plan_type, enrollment_start_date, created_at`

func scanSubscriber(scan func(dest ...any) error) (*models.Subscriber, error) {
	var row models.SubscriberRow
	if err := scan(&row.ID, &row.Email, &row.Plan, &row.PlanType, &row.EnrollmentStartDate, &row.CreatedAt); err != nil {
		return nil, err
	}
	return models.NewSubscriber(row)
}

// GetSubscriber возвращает профиль подписчика. Неполный профиль — models.ErrProfileIncomplete.
func (s *Storage) GetSubscriber(ctx context.Context, id string) (*models.Subscriber, error) {
	const op = "storage.GetSubscriber"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE id = $1`
	sub, err := scanSubscriber(s.DB.QueryRowContext(ctx, query, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrSubscriberNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// CreateSubscriber создаёт профиль, если его ещё нет. created=false означает,
// что профиль уже существовал и не был изменён.
func (s *Storage) CreateSubscriber(ctx context.Context, sub models.Subscriber) (bool, error) {
	const op = "storage.CreateSubscriber"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var email *string
	if sub.Email != "" {
		email = &sub.Email
	}
	query := `INSERT INTO subscribers (id, email, plan, plan_type, enrollment_start_date)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (id) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query,
		sub.ID, email, string(sub.Plan), string(sub.PlanType), sub.EnrollmentStartDate)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected == 1, nil
}

// UpdatePlan меняет тариф подписчика. Дата начала программы не трогается.
func (s *Storage) UpdatePlan(ctx context.Context, id string, plan models.Plan, planType models.PlanType) error {
	const op = "storage.UpdatePlan"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscribers SET plan = $2, plan_type = $3, updated_at = NOW() WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id, string(plan), string(planType))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrSubscriberNotFound)
	}
	return nil
}

// ListPremiumEnrolledSince возвращает премиум-подписчиков, начавших программу не раньше since.
// Неполные профили пропускаются.
func (s *Storage) ListPremiumEnrolledSince(ctx context.Context, since time.Time) ([]*models.Subscriber, error) {
	const op = "storage.ListPremiumEnrolledSince"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriberColumns + `
			  FROM subscribers
			  WHERE plan = 'premium' AND enrollment_start_date >= $1
			  ORDER BY enrollment_start_date, id`
	rows, err := s.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var result []*models.Subscriber
	for rows.Next() {
		sub, err := scanSubscriber(rows.Scan)
		if errors.Is(err, models.ErrProfileIncomplete) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
