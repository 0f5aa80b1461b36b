package dayaccess

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/estrella-del-alba/internal/entitlement"
	"github.com/magabrotheeeer/estrella-del-alba/internal/http/middlewarectx"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/jwt"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Check(ctx context.Context, subscriberID string, day int) (entitlement.Decision, error) {
	args := m.Called(ctx, subscriberID, day)
	return args.Get(0).(entitlement.Decision), args.Error(1)
}

func TestAccessHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		day            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "доступ разрешён",
			day:  "2",
			setupMock: func(m *MockService) {
				m.On("Check", mock.Anything, "sub-1", 2).
					Return(entitlement.Decision{Allowed: true, MaxDay: 3}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"allowed":true,"max_day":3}}`,
		},
		{
			name: "день ещё закрыт",
			day:  "5",
			setupMock: func(m *MockService) {
				m.On("Check", mock.Anything, "sub-1", 5).
					Return(entitlement.Decision{Reason: entitlement.ReasonNotYetUnlocked, MaxDay: 3}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"allowed":false,"reason":"not_yet_unlocked","max_day":3}}`,
		},
		{
			name:           "некорректный номер дня",
			day:            "abc",
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode day from url"}`,
		},
		{
			name: "день вне программы",
			day:  "30",
			setupMock: func(m *MockService) {
				m.On("Check", mock.Anything, "sub-1", 30).
					Return(entitlement.Decision{}, models.ErrDayOutOfRange).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"day out of range"}`,
		},
		{
			name: "ошибка сервиса",
			day:  "1",
			setupMock: func(m *MockService) {
				m.On("Check", mock.Anything, "sub-1", 1).
					Return(entitlement.Decision{}, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not check access"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/days/"+tt.day+"/access", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("day", tt.day)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "test-request-id")
			ctx = context.WithValue(ctx, middlewarectx.SubscriberID, "sub-1")
			ctx = context.WithValue(ctx, middlewarectx.Role, jwt.RoleSubscriber)
			req = req.WithContext(ctx)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
