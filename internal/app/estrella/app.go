// Package estrella собирает HTTP API программы: хранилище, кеш, брокер и сервисы.
package estrella

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/estrella-del-alba/internal/cache"
	"github.com/magabrotheeeer/estrella-del-alba/internal/config"
	"github.com/magabrotheeeer/estrella-del-alba/internal/entitlement"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/jwt"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/metrics"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/sl"
	"github.com/magabrotheeeer/estrella-del-alba/internal/migrations"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
	accessservice "github.com/magabrotheeeer/estrella-del-alba/internal/services/access"
	contentservice "github.com/magabrotheeeer/estrella-del-alba/internal/services/content"
	profileservice "github.com/magabrotheeeer/estrella-del-alba/internal/services/profile"
	progressservice "github.com/magabrotheeeer/estrella-del-alba/internal/services/progress"
	"github.com/magabrotheeeer/estrella-del-alba/internal/storage"
)

// App — HTTP-приложение со всеми зависимостями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New подключает зависимости, применяет миграции и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}

	var publisher progressservice.EventPublisher = rabbitmq.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			app.close()
			return nil, err
		}
		app.conn = conn
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetProgressQueues())
		if err != nil {
			app.close()
			return nil, err
		}
		app.ch = ch
		publisher = rabbitmq.NewPublisher(ch)
	} else {
		logger.Warn("rabbitmq url is empty, unlock events are not published")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	program := models.Program{TotalDays: cfg.TotalDays}
	evaluator := entitlement.New(program)

	progressService := progressservice.New(db, db, cacheRedis, publisher, m, program, cfg.CacheTTL, logger)
	contentService := contentservice.New(db, cacheRedis, program, cfg.CacheTTL, logger)
	accessService := accessservice.New(db, evaluator, progressService, contentService, m, logger)
	profileService := profileservice.New(db, progressService, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Services{
		Progress: progressService,
		Access:   accessService,
		Profile:  profileService,
		Content:  contentService,
		Tokens:   jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL),
		Limiter:  cfg.RateLimit,
		Registry: reg,
		Checks:   app.healthChecks(),
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run обслуживает запросы до отмены ctx и затем плавно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.ch != nil {
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close channel", sl.Err(err))
		}
	}
	if a.conn != nil {
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close cache", sl.Err(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("failed to close storage", sl.Err(err))
		}
	}
}
