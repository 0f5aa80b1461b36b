package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

func scanProgress(scan func(dest ...any) error) (*models.ProgressRecord, error) {
	var (
		subscriberID string
		day          int
		completed    bool
		completedAt  *time.Time
		unlocked     bool
	)
	if err := scan(&subscriberID, &day, &completed, &completedAt, &unlocked); err != nil {
		return nil, err
	}
	return models.NewProgressRecord(subscriberID, day, completed, completedAt, unlocked)
}

// HasProgress сообщает, есть ли у подписчика хотя бы одна запись прогресса.
func (s *Storage) HasProgress(ctx context.Context, subscriberID string) (bool, error) {
	const op = "storage.HasProgress"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM progress WHERE subscriber_id = $1)`, subscriberID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// InsertProgressIfAbsent вставляет запись, если пары (подписчик, день) ещё нет.
// Повторная вставка схлопывается первичным ключом и возвращает inserted=false.
func (s *Storage) InsertProgressIfAbsent(ctx context.Context, rec models.ProgressRecord) (bool, error) {
	const op = "storage.InsertProgressIfAbsent"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO progress (subscriber_id, day, completed, completed_at, unlocked)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (subscriber_id, day) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query,
		rec.SubscriberID, rec.Day, rec.Completed, rec.CompletedAt, rec.Unlocked)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected == 1, nil
}

// GetProgress возвращает запись за день или models.ErrProgressNotFound.
func (s *Storage) GetProgress(ctx context.Context, subscriberID string, day int) (*models.ProgressRecord, error) {
	const op = "storage.GetProgress"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT subscriber_id, day, completed, completed_at, unlocked
			  FROM progress WHERE subscriber_id = $1 AND day = $2`
	rec, err := scanProgress(s.DB.QueryRowContext(ctx, query, subscriberID, day).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrProgressNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}

const unlockQuery = `INSERT INTO progress (subscriber_id, day, unlocked)
			  VALUES ($1, $2, TRUE)
			  ON CONFLICT (subscriber_id, day) DO UPDATE SET unlocked = TRUE
			  WHERE progress.unlocked = FALSE`

// UnlockDay создаёт запись за день или поднимает у неё флаг unlocked.
// unlocked=true означает, что день открылся именно этим вызовом.
func (s *Storage) UnlockDay(ctx context.Context, subscriberID string, day int) (bool, error) {
	const op = "storage.UnlockDay"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, unlockQuery, subscriberID, day)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected == 1, nil
}

// CompleteDay в одной транзакции отмечает день пройденным и открывает nextDay
// (nextDay = 0 — следующего дня нет). completed=false означает, что день уже был
// пройден раньше: completed_at при этом не перезаписывается, а открытие
// следующего дня всё равно применяется.
func (s *Storage) CompleteDay(ctx context.Context, subscriberID string, day int, completedAt time.Time, nextDay int) (completed, unlocked bool, err error) {
	const op = "storage.CompleteDay"
	select {
	case <-ctx.Done():
		return false, false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx,
		`UPDATE progress SET completed = TRUE, completed_at = $3
		 WHERE subscriber_id = $1 AND day = $2 AND completed = FALSE`,
		subscriberID, day, completedAt)
	if err != nil {
		return false, false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, false, fmt.Errorf("%s: %w", op, err)
	}
	completed = rowsAffected == 1

	if nextDay > 0 {
		result, err = tx.ExecContext(ctx, unlockQuery, subscriberID, nextDay)
		if err != nil {
			return false, false, fmt.Errorf("%s: %w", op, err)
		}
		rowsAffected, err = result.RowsAffected()
		if err != nil {
			return false, false, fmt.Errorf("%s: %w", op, err)
		}
		unlocked = rowsAffected == 1
	}

	if err = tx.Commit(); err != nil {
		return false, false, fmt.Errorf("%s: %w", op, err)
	}
	return completed, unlocked, nil
}

// ListProgress возвращает записи подписчика по возрастанию номера дня.
func (s *Storage) ListProgress(ctx context.Context, subscriberID string) ([]*models.ProgressRecord, error) {
	const op = "storage.ListProgress"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT subscriber_id, day, completed, completed_at, unlocked
			  FROM progress
			  WHERE subscriber_id = $1
			  ORDER BY day`
	rows, err := s.DB.QueryContext(ctx, query, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*models.ProgressRecord, 0)
	for rows.Next() {
		rec, err := scanProgress(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
