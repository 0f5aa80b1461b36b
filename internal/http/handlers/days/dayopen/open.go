// Package dayopen реализует HTTP-обработчик выдачи материалов дня.
//
// Материалы отдаются только после проверки доступа; отказ — 403 с машинной причиной.
package dayopen

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

// Handler обрабатывает GET /days/{day}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает выдачу материалов дня.
type Service interface {
	OpenDay(ctx context.Context, subscriberID string, day int) (*models.ContentDay, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

var denials = []struct {
	err     error
	reason  entitlement.Reason
	message string
}{
	{models.ErrPlanRestricted, entitlement.ReasonPlanRestricted, "day requires a premium plan"},
	{models.ErrNotYetUnlocked, entitlement.ReasonNotYetUnlocked, "day is not available yet, come back tomorrow"},
	{models.ErrProfileIncomplete, entitlement.ReasonProfileIncomplete, "profile is incomplete"},
}

// ServeHTTP godoc
// @Summary Открыть день
// @Description Возвращает материалы дня, если он доступен по тарифу и журналу прогресса.
// @Tags Days
// @Produce  json
// @Param day path int true "Номер дня"
// @Param subscriber_id query string false "Подписчик (только для админа)"
// @Success 200 {object} response.OKResponse "Материалы дня"
// @Failure 400 {object} response.ErrorResponse "Некорректный номер дня"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещён, см. reason"
// @Failure 404 {object} response.ErrorResponse "Материалов нет"
// @Failure 500 {object} response.ErrorResponse "Хранилище недоступно"
// @Security BearerAuth
// @Router /days/{day} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.days.open"

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
	log = log.With(sl.Subscriber(subscriberID), sl.Day(day))

	content, err := h.service.OpenDay(r.Context(), subscriberID, day)
	if err == nil {
		log.Info("day opened")
		render.JSON(w, r, response.OKWithData(content))
		return
	}

	for _, d := range denials {
		if errors.Is(err, d.err) {
			log.Info("access denied", slog.String("reason", string(d.reason)))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Denied(d.message, string(d.reason)))
			return
		}
	}

	switch {
	case errors.Is(err, models.ErrDayOutOfRange):
		log.Warn("day out of range")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("day out of range"))
	case errors.Is(err, models.ErrContentNotFound):
		log.Error("content missing for day", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("content not found"))
	default:
		log.Error("failed to open day", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not open day"))
	}
}
