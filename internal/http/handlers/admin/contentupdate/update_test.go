package contentupdate

import (
	"bytes"
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

	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, day models.ContentDay) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	audio := models.MediaRef{Kind: "audio", URL: "https://cdn.example.com/day2.mp3"}

	tests := []struct {
		name           string
		day            string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "материалы обновлены",
			day:  "2",
			body: `{"title":"Respirar","media_refs":[{"kind":"audio","url":"https://cdn.example.com/day2.mp3"}]}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, models.ContentDay{
					Day: 2, Title: "Respirar", MediaRefs: []models.MediaRef{audio},
				}).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"status":"OK","data":{"day":2,"title":"Respirar","description":"",` +
				`"media_refs":[{"kind":"audio","url":"https://cdn.example.com/day2.mp3"}]}}`,
		},
		{
			name:           "некорректный номер дня",
			day:            "two",
			body:           `{"title":"Respirar"}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode day from url"}`,
		},
		{
			name:           "битый json",
			day:            "2",
			body:           `{"title":`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name:           "нет заголовка",
			day:            "2",
			body:           `{"description":"sin título"}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Title is a required field"}`,
		},
		{
			name:           "неизвестный тип медиа",
			day:            "2",
			body:           `{"title":"Respirar","media_refs":[{"kind":"gif","url":"https://cdn.example.com/a.gif"}]}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field Kind must be one of: audio pdf video"}`,
		},
		{
			name: "день вне программы",
			day:  "12",
			body: `{"title":"Extra"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, models.ContentDay{Day: 12, Title: "Extra"}).
					Return(models.ErrDayOutOfRange).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"day out of range"}`,
		},
		{
			name: "ошибка хранилища",
			day:  "3",
			body: `{"title":"Soltar"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, models.ContentDay{Day: 3, Title: "Soltar"}).
					Return(errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not update content"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/days/"+tt.day, bytes.NewBufferString(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("day", tt.day)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "test-request-id")
			req = req.WithContext(ctx)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
