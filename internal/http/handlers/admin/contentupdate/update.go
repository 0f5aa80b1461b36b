// Package contentupdate реализует HTTP-обработчик редактирования материалов дня.
package contentupdate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/estrella-del-alba/internal/http/response"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/sl"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

// Request — новые материалы дня.
type Request struct {
	Title       string            `json:"title" validate:"required" example:"Despertar"`
	Description string            `json:"description" example:"Meditación guiada de diez minutos"`
	MediaRefs   []models.MediaRef `json:"media_refs" validate:"dive"`
}

// Handler обрабатывает PUT /admin/days/{day}.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает запись материалов.
type Service interface {
	Update(ctx context.Context, day models.ContentDay) error
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
// @Summary Обновить материалы дня
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param day path int true "Номер дня"
// @Param request body Request true "Материалы"
// @Success 200 {object} response.OKResponse "Материалы сохранены"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 403 {object} response.ErrorResponse "Нужна роль admin"
// @Failure 500 {object} response.ErrorResponse "Хранилище недоступно"
// @Security BearerAuth
// @Router /admin/days/{day} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.contentupdate"

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

	content := models.ContentDay{
		Day:         day,
		Title:       req.Title,
		Description: req.Description,
		MediaRefs:   req.MediaRefs,
	}
	err = h.service.Update(r.Context(), content)
	if errors.Is(err, models.ErrDayOutOfRange) {
		log.Warn("day out of range", sl.Day(day))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("day out of range"))
		return
	}
	if err != nil {
		log.Error("failed to update content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update content"))
		return
	}

	log.Info("content updated", sl.Day(day))
	render.JSON(w, r, response.OKWithData(content))
}
