// Package progressinit реализует HTTP-обработчик заведения журнала прогресса.
//
// Повторный вызов для того же подписчика ничего не меняет и тоже отвечает {"ok":true}.
package progressinit

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
)

// Request — тело запроса.
type Request struct {
	SubscriberID string `json:"subscriber_id" validate:"required,uuid" example:"3f0c6a52-8a7e-4d47-9c43-1b0f0c9d2e11"`
}

// Handler обрабатывает POST /progress/init.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс журнала прогресса.
type Service interface {
	InitializeIfAbsent(ctx context.Context, subscriberID string) error
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
// @Summary Завести журнал прогресса
// @Description Создаёт запись первого дня (открыт, не пройден), если журнала ещё нет.
// @Tags Progress
// @Accept  json
// @Produce  json
// @Param request body Request true "Подписчик"
// @Success 200 {object} response.OKResponse "Журнал заведён"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 403 {object} response.ErrorResponse "Чужой подписчик"
// @Failure 500 {object} response.ErrorResponse "Хранилище недоступно"
// @Security BearerAuth
// @Router /progress/init [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.progress.init"

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

	if err := h.service.InitializeIfAbsent(r.Context(), subscriberID); err != nil {
		log.Error("failed to initialize progress", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not initialize progress"))
		return
	}

	log.Info("progress initialized", sl.Subscriber(subscriberID))
	render.JSON(w, r, response.Ledger(nil))
}
