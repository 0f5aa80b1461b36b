// Package profileenroll реализует HTTP-обработчик создания профиля подписчика.
//
// Дата начала программы ставится сервером («сегодня» по UTC) и больше не меняется.
package profileenroll

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
	Email        string `json:"email" validate:"omitempty,email" example:"luz@example.com"`
	PlanType     string `json:"plan_type" validate:"required,oneof=free premium-monthly premium-annual" example:"premium-monthly"`
}

// Handler обрабатывает POST /profile.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает создание профиля.
type Service interface {
	Enroll(ctx context.Context, subscriberID, email string, planType models.PlanType) (*models.Subscriber, error)
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
// @Summary Создать профиль
// @Description Создаёт профиль с датой начала программы «сегодня» и открывает первый день.
// @Tags Profile
// @Accept  json
// @Produce  json
// @Param request body Request true "Профиль"
// @Success 201 {object} response.OKResponse "Профиль создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 403 {object} response.ErrorResponse "Чужой подписчик"
// @Failure 409 {object} response.ErrorResponse "Профиль уже существует"
// @Failure 500 {object} response.ErrorResponse "Хранилище недоступно"
// @Security BearerAuth
// @Router /profile [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.enroll"

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

	planType, err := models.ParsePlanType(req.PlanType)
	if err != nil {
		log.Error("invalid plan type", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid plan type"))
		return
	}

	sub, err := h.service.Enroll(r.Context(), subscriberID, req.Email, planType)
	if errors.Is(err, models.ErrAlreadyEnrolled) {
		log.Info("subscriber already enrolled", sl.Subscriber(subscriberID))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("subscriber already enrolled"))
		return
	}
	if err != nil {
		log.Error("failed to enroll subscriber", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not enroll subscriber"))
		return
	}

	log.Info("subscriber enrolled", sl.Subscriber(subscriberID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(sub))
}
