// Package progresslist реализует HTTP-обработчик чтения журнала прогресса.
package progresslist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/estrella-del-alba/internal/http/middlewarectx"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/response"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/sl"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

// Handler обрабатывает GET /progress.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс журнала прогресса.
type Service interface {
	ListProgress(ctx context.Context, subscriberID string) ([]*models.ProgressRecord, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Журнал прогресса
// @Description Возвращает записи прогресса по возрастанию дня. Админ может указать subscriber_id.
// @Tags Progress
// @Produce  json
// @Param subscriber_id query string false "Подписчик (только для админа)"
// @Success 200 {object} response.OKResponse "Журнал"
// @Failure 403 {object} response.ErrorResponse "Чужой подписчик"
// @Failure 500 {object} response.ErrorResponse "Хранилище недоступно"
// @Security BearerAuth
// @Router /progress [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.progress.list"

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

	records, err := h.service.ListProgress(r.Context(), subscriberID)
	if err != nil {
		log.Error("failed to list progress", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list progress"))
		return
	}

	log.Info("progress listed", sl.Subscriber(subscriberID), slog.Int("count", len(records)))
	render.JSON(w, r, response.OKWithData(records))
}
