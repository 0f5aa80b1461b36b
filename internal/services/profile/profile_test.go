package profile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetSubscriber(ctx context.Context, id string) (*models.Subscriber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscriber), args.Error(1)
}
func (m *RepoMock) CreateSubscriber(ctx context.Context, sub models.Subscriber) (bool, error) {
	args := m.Called(ctx, sub)
	return args.Bool(0), args.Error(1)
}
func (m *RepoMock) UpdatePlan(ctx context.Context, id string, plan models.Plan, planType models.PlanType) error {
	return m.Called(ctx, id, plan, planType).Error(0)
}

type LedgerMock struct{ mock.Mock }

func (m *LedgerMock) InitializeIfAbsent(ctx context.Context, subscriberID string) error {
	return m.Called(ctx, subscriberID).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

const subscriberID = "1d7f4b2a-6c3e-4f80-a5b9-0e2c8d6f4a13"

var now = time.Date(2026, 6, 3, 21, 15, 0, 0, time.UTC)

func newService(repo *RepoMock, ledger *LedgerMock) *Service {
	svc := New(repo, ledger, newNoopLogger())
	svc.now = func() time.Time { return now }
	return svc
}

func TestService_Enroll(t *testing.T) {
	today := time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)
	want := models.Subscriber{
		ID:                  subscriberID,
		Email:               "aurora@example.com",
		Plan:                models.PlanPremium,
		PlanType:            models.PlanTypePremiumAnnual,
		EnrollmentStartDate: today,
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, l *LedgerMock)
		wantErr    error
	}{
		{
			name: "new subscriber",
			setupMocks: func(r *RepoMock, l *LedgerMock) {
				r.On("CreateSubscriber", mock.Anything, want).Return(true, nil).Once()
				l.On("InitializeIfAbsent", mock.Anything, subscriberID).Return(nil).Once()
				r.On("GetSubscriber", mock.Anything, subscriberID).Return(&want, nil).Once()
			},
		},
		{
			name: "second enrollment keeps date",
			setupMocks: func(r *RepoMock, l *LedgerMock) {
				r.On("CreateSubscriber", mock.Anything, want).Return(false, nil).Once()
				l.On("InitializeIfAbsent", mock.Anything, subscriberID).Return(nil).Once()
			},
			wantErr: models.ErrAlreadyEnrolled,
		},
		{
			name: "store failure",
			setupMocks: func(r *RepoMock, _ *LedgerMock) {
				r.On("CreateSubscriber", mock.Anything, want).Return(false, errors.New("refused")).Once()
			},
			wantErr: models.ErrStoreUnavailable,
		},
		{
			name: "ledger failure",
			setupMocks: func(r *RepoMock, l *LedgerMock) {
				r.On("CreateSubscriber", mock.Anything, want).Return(true, nil).Once()
				l.On("InitializeIfAbsent", mock.Anything, subscriberID).Return(models.ErrStoreUnavailable).Once()
			},
			wantErr: models.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, ledger := new(RepoMock), new(LedgerMock)
			tt.setupMocks(repo, ledger)

			got, err := newService(repo, ledger).Enroll(context.Background(), subscriberID, "aurora@example.com", models.PlanTypePremiumAnnual)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, &want, got)
			}
			repo.AssertExpectations(t)
			ledger.AssertExpectations(t)
		})
	}
}

func TestService_ChangePlan(t *testing.T) {
	updated := &models.Subscriber{ID: subscriberID, Plan: models.PlanFree, PlanType: models.PlanTypeFree}

	t.Run("downgrade", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("UpdatePlan", mock.Anything, subscriberID, models.PlanFree, models.PlanTypeFree).Return(nil).Once()
		repo.On("GetSubscriber", mock.Anything, subscriberID).Return(updated, nil).Once()

		got, err := newService(repo, new(LedgerMock)).ChangePlan(context.Background(), subscriberID, models.PlanTypeFree)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("unknown subscriber", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("UpdatePlan", mock.Anything, subscriberID, models.PlanPremium, models.PlanTypePremiumMonthly).
			Return(models.ErrSubscriberNotFound).Once()

		_, err := newService(repo, new(LedgerMock)).ChangePlan(context.Background(), subscriberID, models.PlanTypePremiumMonthly)
		require.ErrorIs(t, err, models.ErrSubscriberNotFound)
	})
}

func TestService_Get(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSubscriber", mock.Anything, subscriberID).Return(nil, errors.New("i/o timeout")).Once()

	_, err := newService(repo, new(LedgerMock)).Get(context.Background(), subscriberID)
	require.ErrorIs(t, err, models.ErrStoreUnavailable)
}
