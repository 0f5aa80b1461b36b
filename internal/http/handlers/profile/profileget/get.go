// Package profileget реализует HTTP-обработчик чтения профиля.
package profileget

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/estrella-del-alba/internal/http/middlewarectx"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/response"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/sl"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

// Handler обрабатывает GET /profile.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение профиля.
type Service interface {
	Get(ctx context.Context, subscriberID string) (*models.Subscriber, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль подписчика
// @Tags Profile
// @Produce  json
// @Param subscriber_id query string false "Подписчик (только для админа)"
// @Success 200 {object} response.OKResponse "Профиль"
// @Failure 403 {object} response.ErrorResponse "Чужой подписчик"
// @Failure 404 {object} response.ErrorResponse "Профиль не найден"
// @Failure 409 {object} response.ErrorResponse "Профиль неполный"
// @Failure 500 {object} response.ErrorResponse "Хранилище недоступно"
// @Security BearerAuth
// @Router /profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	requested := r.URL.Query().Get("subscriber_id")
	subscriberID, err := middlewarectx.ActingSubscriber(r.Context(), requested)
	if err != nil {
		log.Warn("caller may not act on subscriber", slog.String("requested", requested))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("forbidden"))
		return
	}

	sub, err := h.service.Get(r.Context(), subscriberID)
	switch {
	case err == nil:
		render.JSON(w, r, response.OKWithData(sub))
	case errors.Is(err, models.ErrSubscriberNotFound):
		log.Info("profile not found", sl.Subscriber(subscriberID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("profile not found"))
	case errors.Is(err, models.ErrProfileIncomplete):
		log.Warn("profile incomplete", sl.Subscriber(subscriberID))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("profile is incomplete"))
	default:
		log.Error("failed to get profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get profile"))
	}
}
