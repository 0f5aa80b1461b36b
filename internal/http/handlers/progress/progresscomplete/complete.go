// Package progresscomplete реализует HTTP-обработчик отметки дня пройденным.
package progresscomplete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/estrella-del-alba/internal/http/middlewarectx"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/response"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/sl"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

// Request — тело запроса.
type Request struct {
	SubscriberID string `json:"subscriber_id" validate:"required,uuid" example:"3f0c6a52-8a7e-4d47-9c43-1b0f0c9d2e11"`
	Day          int    `json:"day" validate:"required,min=1" example:"1"`
}

// Handler обрабатывает POST /progress/complete.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс журнала прогресса.
type Service interface {
	RecordCompletion(ctx context.Context, subscriberID string, day int) (models.Completion, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отметить день пройденным
// @Description Отмечает день пройденным и открывает следующий. Повторная отметка не ошибка: ответ содержит already_completed.
// @Tags Progress
// @Accept  json
// @Produce  json
// @Param request body Request true "Подписчик и день"
// @Success 200 {object} response.OKResponse "День отмечен"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 403 {object} response.ErrorResponse "Чужой подписчик"
// @Failure 404 {object} response.ErrorResponse "Записи прогресса за день нет"
// @Failure 500 {object} response.ErrorResponse "Хранилище недоступно"
// @Security BearerAuth
// @Router /progress/complete [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.progress.complete"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		errors.As(err, &validateErr)
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErr))
		return
	}

	subscriberID, err := middlewarectx.ActingSubscriber(r.Context(), req.SubscriberID)
	if err != nil {
		log.Warn("caller may not act on subscriber", slog.String("requested", req.SubscriberID))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("forbidden"))
		return
	}
	log = log.With(sl.Subscriber(subscriberID), sl.Day(req.Day))

	completion, err := h.service.RecordCompletion(r.Context(), subscriberID, req.Day)
	switch {
	case err == nil:
		log.Info("day completed")
		render.JSON(w, r, response.Ledger(completion))
	case errors.Is(err, models.ErrAlreadyCompleted):
		log.Info("day already completed")
		render.JSON(w, r, response.Ledger(map[string]any{
			"already_completed": true,
		}))
	case errors.Is(err, models.ErrProgressNotFound):
		log.Warn("completion without progress record", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("progress record not found"))
	case errors.Is(err, models.ErrDayOutOfRange):
		log.Warn("day out of range", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("day out of range"))
	default:
		log.Error("failed to record completion", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not record completion"))
	}
}
