// Package profileplan реализует HTTP-обработчик смены тарифа.
//
// Оплата подтверждается во внешней системе; сюда приходит итоговая периодичность оплаты.
package profileplan

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
	SubscriberID string `json:"subscriber_id" validate:"omitempty,uuid"`
	PlanType     string `json:"plan_type" validate:"required,oneof=free premium-monthly premium-annual" example:"premium-annual"`
}

// Handler обрабатывает PUT /profile/plan.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает смену тарифа.
type Service interface {
	ChangePlan(ctx context.Context, subscriberID string, planType models.PlanType) (*models.Subscriber, error)
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
// @Summary Сменить тариф
// @Tags Profile
// @Accept  json
// @Produce  json
// @Param request body Request true "Новый тариф"
// @Success 200 {object} response.OKResponse "Профиль после смены тарифа"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 403 {object} response.ErrorResponse "Чужой подписчик"
// @Failure 404 {object} response.ErrorResponse "Профиль не найден"
// @Failure 500 {object} response.ErrorResponse "Хранилище недоступно"
// @Security BearerAuth
// @Router /profile/plan [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.plan"

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

	sub, err := h.service.ChangePlan(r.Context(), subscriberID, planType)
	if errors.Is(err, models.ErrSubscriberNotFound) {
		log.Info("profile not found", sl.Subscriber(subscriberID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("profile not found"))
		return
	}
	if err != nil {
		log.Error("failed to change plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not change plan"))
		return
	}

	log.Info("plan changed", sl.Subscriber(subscriberID), slog.String("plan_type", string(planType)))
	render.JSON(w, r, response.OKWithData(sub))
}
