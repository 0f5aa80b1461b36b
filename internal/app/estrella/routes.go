package estrella

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// регистрирует описание API для /docs
	_ "github.com/magabrotheeeer/estrella-del-alba/docs"
	"github.com/magabrotheeeer/estrella-del-alba/internal/config"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/handlers/admin/contentlist"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/handlers/admin/contentupdate"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/handlers/days/dayaccess"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/handlers/days/dayopen"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/handlers/health"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/handlers/profile/profileenroll"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/handlers/profile/profileget"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/handlers/profile/profileplan"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/handlers/progress/progresscomplete"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/handlers/progress/progressinit"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/handlers/progress/progresslist"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/middlewarectx"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/jwt"
)

// ProgressService — журнал прогресса, как его видят обработчики.
type ProgressService interface {
	progressinit.Service
	progresscomplete.Service
	progresslist.Service
}

// AccessService — проверка доступа и открытие дня.
type AccessService interface {
	dayaccess.Service
	dayopen.Service
}

// ProfileService — профиль подписчика.
type ProfileService interface {
	profileenroll.Service
	profileget.Service
	profileplan.Service
}

// ContentService — редактирование материалов.
type ContentService interface {
	contentlist.Service
	contentupdate.Service
}

// Services — всё, что нужно маршрутам.
type Services struct {
	Progress ProgressService
	Access   AccessService
	Profile  ProfileService
	Content  ContentService
	Tokens   middlewarectx.TokenParser
	Limiter  config.RateLimit
	Registry *prometheus.Registry
	Checks   map[string]health.Check
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
	)

	limiter := middlewarectx.NewLimiter(s.Limiter.RPS, s.Limiter.Burst)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.New(logger, s.Checks).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Tokens, logger))
			r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))

			r.Post("/progress/init", progressinit.New(logger, s.Progress).ServeHTTP)
			r.Post("/progress/complete", progresscomplete.New(logger, s.Progress).ServeHTTP)
			r.Get("/progress", progresslist.New(logger, s.Progress).ServeHTTP)

			r.Get("/days/{day}/access", dayaccess.New(logger, s.Access).ServeHTTP)
			r.Get("/days/{day}", dayopen.New(logger, s.Access).ServeHTTP)

			r.Post("/profile", profileenroll.New(logger, s.Profile).ServeHTTP)
			r.Get("/profile", profileget.New(logger, s.Profile).ServeHTTP)
			r.Put("/profile/plan", profileplan.New(logger, s.Profile).ServeHTTP)

			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(jwt.RoleAdmin, logger))
				r.Get("/admin/days", contentlist.New(logger, s.Content).ServeHTTP)
				r.Put("/admin/days/{day}", contentupdate.New(logger, s.Content).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

func (a *App) healthChecks() map[string]health.Check {
	return map[string]health.Check{
		"postgres": func(ctx context.Context) error {
			return a.db.DB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return a.cache.Db.Ping(ctx).Err()
		},
	}
}
