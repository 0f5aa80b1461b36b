// Package middlewarectx содержит HTTP middleware сервиса: проверку JWT,
// проверку роли, ограничение частоты запросов и доступ к данным
// аутентифицированного подписчика в контексте запроса.
//
// Токены выпускает внешний сервис авторизации. Subject токена — идентификатор
// подписчика, claim role — subscriber или admin.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/estrella-del-alba/internal/http/response"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/jwt"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// SubscriberID — ключ для идентификатора подписчика в контексте.
	SubscriberID Key = "subscriber_id"
	// Role — ключ для роли в контексте.
	Role Key = "role"
)

// ErrForbidden — подписчик пытается действовать от имени другого.
var ErrForbidden = errors.New("acting on another subscriber is forbidden")

// TokenParser проверяет JWT и возвращает его claims.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// JWTMiddleware проверяет JWT в заголовке Authorization и кладёт в контекст
// идентификатор подписчика и роль. Иначе отвечает 401.
func JWTMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			role := claims.Role
			if role == "" {
				role = jwt.RoleSubscriber
			}
			ctx := context.WithValue(r.Context(), SubscriberID, claims.Subject)
			ctx = context.WithValue(ctx, Role, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole пропускает только запросы с заданной ролью, иначе отвечает 403.
func RequireRole(role string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got, _ := r.Context().Value(Role).(string); got != role {
				log.Warn("role check failed",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("want", role),
					slog.String("got", got))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Caller возвращает идентификатор и роль аутентифицированного подписчика.
func Caller(ctx context.Context) (subscriberID, role string, ok bool) {
	subscriberID, _ = ctx.Value(SubscriberID).(string)
	role, _ = ctx.Value(Role).(string)
	return subscriberID, role, subscriberID != ""
}

// ActingSubscriber решает, от чьего имени выполняется запрос. Пустой requested
// означает самого вызывающего; чужой идентификатор разрешён только админу.
func ActingSubscriber(ctx context.Context, requested string) (string, error) {
	caller, role, ok := Caller(ctx)
	if !ok {
		return "", ErrForbidden
	}
	if requested == "" || requested == caller {
		return caller, nil
	}
	if role == jwt.RoleAdmin {
		return requested, nil
	}
	return "", ErrForbidden
}
