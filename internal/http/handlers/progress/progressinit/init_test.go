package progressinit

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/estrella-del-alba/internal/http/middlewarectx"
	"github.com/magabrotheeeer/estrella-del-alba/internal/lib/jwt"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) InitializeIfAbsent(ctx context.Context, subscriberID string) error {
	return m.Called(ctx, subscriberID).Error(0)
}

const (
	ownID   = "3f0c6a52-8a7e-4d47-9c43-1b0f0c9d2e11"
	otherID = "7a1e2b3c-4d5e-4f60-8a9b-0c1d2e3f4a5b"
)

func TestInitHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		body           string
		callerRole     string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:       "журнал заведён",
			body:       `{"subscriber_id":"` + ownID + `"}`,
			callerRole: jwt.RoleSubscriber,
			setupMock: func(m *MockService) {
				m.On("InitializeIfAbsent", mock.Anything, ownID).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","ok":true}`,
		},
		{
			name:       "админ заводит журнал другому",
			body:       `{"subscriber_id":"` + otherID + `"}`,
			callerRole: jwt.RoleAdmin,
			setupMock: func(m *MockService) {
				m.On("InitializeIfAbsent", mock.Anything, otherID).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","ok":true}`,
		},
		{
			name:           "чужой подписчик",
			body:           `{"subscriber_id":"` + otherID + `"}`,
			callerRole:     jwt.RoleSubscriber,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"forbidden"}`,
		},
		{
			name:           "некорректный JSON",
			body:           `not a json`,
			callerRole:     jwt.RoleSubscriber,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "не uuid",
			body:           `{"subscriber_id":"abc"}`,
			callerRole:     jwt.RoleSubscriber,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field SubscriberID can contain only uuid"}`,
		},
		{
			name:       "хранилище недоступно",
			body:       `{"subscriber_id":"` + ownID + `"}`,
			callerRole: jwt.RoleSubscriber,
			setupMock: func(m *MockService) {
				m.On("InitializeIfAbsent", mock.Anything, ownID).
					Return(errors.Join(models.ErrStoreUnavailable, errors.New("refused"))).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not initialize progress"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/progress/init", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "test-request-id")
			ctx = context.WithValue(ctx, middlewarectx.SubscriberID, ownID)
			ctx = context.WithValue(ctx, middlewarectx.Role, tt.callerRole)
			req = req.WithContext(ctx)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
