// Package dayaccess реализует HTTP-обработчик проверки доступа к дню.
package dayaccess

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/estrella-del-alba/internal/entitlement"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/middlewarectx"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/response"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/sl"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

// Handler обрабатывает GET /days/{day}/access.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает проверку доступа.
type Service interface {
	Check(ctx context.Context, subscriberID string, day int) (entitlement.Decision, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить доступ к дню
// @Description Возвращает решение: allowed, причину отказа и последний доступный день.
// @Tags Days
// @Produce  json
// @Param day path int true "Номер дня"
// @Param subscriber_id query string false "Подписчик (только для админа)"
// @Success 200 {object} response.OKResponse "Решение"
// @Failure 400 {object} response.ErrorResponse "Некорректный номер дня"
// @Failure 403 {object} response.ErrorResponse "Чужой подписчик"
// @Failure 500 {object} response.ErrorResponse "Хранилище недоступно"
// @Security BearerAuth
// @Router /days/{day}/access [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.days.access"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		log.Error("failed to decode day from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode day from url"))
		return
	}

	requested := r.URL.Query().Get("subscriber_id")
	subscriberID, err := middlewarectx.ActingSubscriber(r.Context(), requested)
	if err != nil {
		log.Warn("caller may not act on subscriber", slog.String("requested", requested))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("forbidden"))
		return
	}

	decision, err := h.service.Check(r.Context(), subscriberID, day)
	if errors.Is(err, models.ErrDayOutOfRange) {
		log.Warn("day out of range", sl.Day(day))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("day out of range"))
		return
	}
	if err != nil {
		log.Error("failed to check access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check access"))
		return
	}

	log.Debug("access checked", sl.Subscriber(subscriberID), sl.Day(day), slog.Bool("allowed", decision.Allowed))
	render.JSON(w, r, response.OKWithData(decision))
}
