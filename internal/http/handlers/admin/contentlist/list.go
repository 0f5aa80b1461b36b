// Package contentlist реализует HTTP-обработчик списка материалов дней для бэк-офиса.
package contentlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/estrella-del-alba/internal/http/response"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/sl"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

// Handler обрабатывает GET /admin/days.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение материалов.
type Service interface {
	List(ctx context.Context) ([]*models.ContentDay, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Материалы всех дней
// @Tags Admin
// @Produce  json
// @Success 200 {object} response.OKResponse "Материалы"
// @Failure 403 {object} response.ErrorResponse "Нужна роль admin"
// @Failure 500 {object} response.ErrorResponse "Хранилище недоступно"
// @Security BearerAuth
// @Router /admin/days [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.contentlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	days, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list content"))
		return
	}

	log.Info("content listed", slog.Int("count", len(days)))
	render.JSON(w, r, response.OKWithData(days))
}
