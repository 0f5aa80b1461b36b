package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

func scanContentDay(scan func(dest ...any) error) (*models.ContentDay, error) {
	var (
		content models.ContentDay
		media   []byte
	)
	if err := scan(&content.Day, &content.Title, &content.Description, &media); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(media, &content.MediaRefs); err != nil {
		return nil, fmt.Errorf("decode media_refs for day %d: %w", content.Day, err)
	}
	return &content, nil
}

// GetContentDay возвращает материалы дня или models.ErrContentNotFound.
func (s *Storage) GetContentDay(ctx context.Context, day int) (*models.ContentDay, error) {
	const op = "storage.GetContentDay"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT day, title, description, media_refs FROM content_days WHERE day = $1`
	content, err := scanContentDay(s.DB.QueryRowContext(ctx, query, day).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrContentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return content, nil
}

// ListContentDays возвращает материалы дней с 1 по maxDay.
func (s *Storage) ListContentDays(ctx context.Context, maxDay int) ([]*models.ContentDay, error) {
	const op = "storage.ListContentDays"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT day, title, description, media_refs
			  FROM content_days
			  WHERE day BETWEEN 1 AND $1
			  ORDER BY day`
	rows, err := s.DB.QueryContext(ctx, query, maxDay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*models.ContentDay, 0, maxDay)
	for rows.Next() {
		content, err := scanContentDay(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpsertContentDay создаёт или заменяет материалы дня.
func (s *Storage) UpsertContentDay(ctx context.Context, content models.ContentDay) error {
	const op = "storage.UpsertContentDay"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	media := content.MediaRefs
	if media == nil {
		media = []models.MediaRef{}
	}
	raw, err := json.Marshal(media)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO content_days (day, title, description, media_refs)
			  VALUES ($1, $2, $3, $4::jsonb)
			  ON CONFLICT (day) DO UPDATE
			  SET title = EXCLUDED.title, description = EXCLUDED.description,
			      media_refs = EXCLUDED.media_refs, updated_at = NOW()`
	if _, err := s.DB.ExecContext(ctx, query, content.Day, content.Title, content.Description, string(raw)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
