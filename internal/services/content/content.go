// Package content — материалы дней программы и их редактирование из бэк-офиса.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/estrella-del-alba/internal/cache"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/sl"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

// Repository хранит материалы дней.
type Repository interface {
	GetContentDay(ctx context.Context, day int) (*models.ContentDay, error)
	ListContentDays(ctx context.Context, maxDay int) ([]*models.ContentDay, error)
	UpsertContentDay(ctx context.Context, content models.ContentDay) error
}

// Cache описывает методы для кеширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service отдаёт и обновляет материалы дней.
type Service struct {
	repo     Repository
	cache    Cache
	program  models.Program
	cacheTTL time.Duration
	log      *slog.Logger
}

// New создаёт Service.
func New(repo Repository, cache Cache, program models.Program, cacheTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		program:  program,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// List возвращает материалы всех дней программы.
func (s *Service) List(ctx context.Context) ([]*models.ContentDay, error) {
	const op = "content.List"
	days, err := s.repo.ListContentDays(ctx, s.program.TotalDays)
	if err != nil {
		return nil, models.StoreError(op, err)
	}
	return days, nil
}

// Get возвращает материалы дня, используя кеш.
func (s *Service) Get(ctx context.Context, day int) (*models.ContentDay, error) {
	const op = "content.Get"
	log := s.log.With(slog.String("op", op), sl.Day(day))

	if !s.program.Contains(day) {
		return nil, fmt.Errorf("%s: %w: %d", op, models.ErrDayOutOfRange, day)
	}

	key := cache.ContentDayKey(day)
	var cached *models.ContentDay
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		log.Warn("failed to read content from cache", slog.String("key", key), sl.Err(err))
	}
	if found && cached != nil {
		return cached, nil
	}

	result, err := s.repo.GetContentDay(ctx, day)
	if err != nil {
		return nil, models.StoreError(op, err)
	}
	if err := s.cache.Set(key, result, s.cacheTTL); err != nil {
		log.Warn("failed to add content to cache", slog.String("key", key), sl.Err(err))
	}
	return result, nil
}

// Update записывает материалы дня и сбрасывает кеш.
func (s *Service) Update(ctx context.Context, day models.ContentDay) error {
	const op = "content.Update"
	log := s.log.With(slog.String("op", op), sl.Day(day.Day))

	if !s.program.Contains(day.Day) {
		return fmt.Errorf("%s: %w: %d", op, models.ErrDayOutOfRange, day.Day)
	}
	if err := s.repo.UpsertContentDay(ctx, day); err != nil {
		return models.StoreError(op, err)
	}

	key := cache.ContentDayKey(day.Day)
	if err := s.cache.Invalidate(key); err != nil {
		log.Warn("failed to remove from cache", slog.String("key", key), sl.Err(err))
	}
	log.Info("content updated")
	return nil
}
