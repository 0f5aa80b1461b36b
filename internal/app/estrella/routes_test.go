package estrella

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/estrella-del-alba/internal/config"
	"github.com/magabrotheeeer/estrella-del-alba/internal/entitlement"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/handlers/health"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/jwt"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

type stubProgress struct{}

func (stubProgress) InitializeIfAbsent(context.Context, string) error { return nil }
func (stubProgress) RecordCompletion(context.Context, string, int) (models.Completion, error) {
	return models.Completion{}, nil
}
func (stubProgress) ListProgress(context.Context, string) ([]*models.ProgressRecord, error) {
	return []*models.ProgressRecord{}, nil
}

type stubAccess struct{}

func (stubAccess) Check(context.Context, string, int) (entitlement.Decision, error) {
	return entitlement.Decision{Allowed: true, MaxDay: 1}, nil
}
func (stubAccess) OpenDay(context.Context, string, int) (*models.ContentDay, error) {
	return &models.ContentDay{Day: 1}, nil
}

type stubProfile struct{}

func (stubProfile) Enroll(context.Context, string, string, models.PlanType) (*models.Subscriber, error) {
	return &models.Subscriber{}, nil
}
func (stubProfile) Get(context.Context, string) (*models.Subscriber, error) {
	return &models.Subscriber{}, nil
}
func (stubProfile) ChangePlan(context.Context, string, models.PlanType) (*models.Subscriber, error) {
	return &models.Subscriber{}, nil
}

type stubContent struct{}

func (stubContent) List(context.Context) ([]*models.ContentDay, error) {
	return []*models.ContentDay{}, nil
}
func (stubContent) Update(context.Context, models.ContentDay) error { return nil }

func newTestRouter(t *testing.T) (http.Handler, *jwt.MakerImpl) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	maker := jwt.NewJWTMaker("test-secret", time.Hour)

	r := chi.NewRouter()
	RegisterRoutes(r, logger, Services{
		Progress: stubProgress{},
		Access:   stubAccess{},
		Profile:  stubProfile{},
		Content:  stubContent{},
		Tokens:   maker,
		Limiter:  config.RateLimit{RPS: 100, Burst: 100},
		Registry: prometheus.NewRegistry(),
		Checks: map[string]health.Check{
			"postgres": func(context.Context) error { return nil },
		},
	})
	return r, maker
}

func TestRoutes(t *testing.T) {
	router, maker := newTestRouter(t)

	subscriberToken, err := maker.GenerateToken("3f0c6a52-8a7e-4d47-9c43-1b0f0c9d2e11", jwt.RoleSubscriber)
	require.NoError(t, err)
	adminToken, err := maker.GenerateToken("7a1e2b3c-4d5e-4f60-8a9b-0c1d2e3f4a5b", jwt.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		expectedStatus int
	}{
		{name: "health открыт без токена", method: http.MethodGet, path: "/api/v1/health", expectedStatus: http.StatusOK},
		{name: "прогресс без токена", method: http.MethodGet, path: "/api/v1/progress", expectedStatus: http.StatusUnauthorized},
		{name: "прогресс с токеном", method: http.MethodGet, path: "/api/v1/progress", token: subscriberToken, expectedStatus: http.StatusOK},
		{name: "доступ к дню", method: http.MethodGet, path: "/api/v1/days/1/access", token: subscriberToken, expectedStatus: http.StatusOK},
		{name: "бэк-офис для подписчика закрыт", method: http.MethodGet, path: "/api/v1/admin/days", token: subscriberToken, expectedStatus: http.StatusForbidden},
		{name: "бэк-офис для администратора", method: http.MethodGet, path: "/api/v1/admin/days", token: adminToken, expectedStatus: http.StatusOK},
		{name: "метрики", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}
