package access

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

	"github.com/magabrotheeeer/estrella-del-alba/internal/entitlement"
	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

type SubscribersMock struct{ mock.Mock }

func (m *SubscribersMock) GetSubscriber(ctx context.Context, id string) (*models.Subscriber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscriber), args.Error(1)
}

type LedgerMock struct{ mock.Mock }

func (m *LedgerMock) GetRecord(ctx context.Context, subscriberID string, day int) (*models.ProgressRecord, error) {
	args := m.Called(ctx, subscriberID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressRecord), args.Error(1)
}
func (m *LedgerMock) EnsureUnlocked(ctx context.Context, subscriberID string, day int) error {
	return m.Called(ctx, subscriberID, day).Error(0)
}

type ContentMock struct{ mock.Mock }

func (m *ContentMock) Get(ctx context.Context, day int) (*models.ContentDay, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentDay), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

const subscriberID = "9b2d1c40-5e3f-4a61-8f7a-2c6d4e8b1a90"

var (
	start = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	now   = start.Add(2*24*time.Hour + 6*time.Hour)
)

func newService(subs *SubscribersMock, ledger *LedgerMock, content *ContentMock) *Service {
	svc := New(subs, entitlement.New(models.NewProgram(7)), ledger, content, nil, newNoopLogger())
	svc.now = func() time.Time { return now }
	return svc
}

func premium() *models.Subscriber {
	return &models.Subscriber{ID: subscriberID, Plan: models.PlanPremium, PlanType: models.PlanTypePremiumMonthly, EnrollmentStartDate: start}
}

func free() *models.Subscriber {
	return &models.Subscriber{ID: subscriberID, Plan: models.PlanFree, PlanType: models.PlanTypeFree, EnrollmentStartDate: start}
}

func TestService_Check(t *testing.T) {
	tests := []struct {
		name    string
		sub     *models.Subscriber
		subErr  error
		day     int
		want    entitlement.Decision
		wantErr error
	}{
		{
			name: "premium within elapsed window",
			sub:  premium(),
			day:  3,
			want: entitlement.Decision{Allowed: true, MaxDay: 3},
		},
		{
			name: "premium ahead of schedule",
			sub:  premium(),
			day:  4,
			want: entitlement.Decision{Reason: entitlement.ReasonNotYetUnlocked, MaxDay: 3},
		},
		{
			name: "free plan beyond day one",
			sub:  free(),
			day:  2,
			want: entitlement.Decision{Reason: entitlement.ReasonPlanRestricted, MaxDay: 1},
		},
		{
			name:   "missing profile",
			subErr: models.ErrSubscriberNotFound,
			day:    1,
			want:   entitlement.Decision{Reason: entitlement.ReasonProfileIncomplete},
		},
		{
			name:   "incomplete profile",
			subErr: models.ErrProfileIncomplete,
			day:    1,
			want:   entitlement.Decision{Reason: entitlement.ReasonProfileIncomplete},
		},
		{
			name:    "store failure",
			subErr:  errors.New("connection reset"),
			day:     1,
			wantErr: models.ErrStoreUnavailable,
		},
		{
			name:    "day out of range",
			sub:     premium(),
			day:     9,
			wantErr: models.ErrDayOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := new(SubscribersMock)
			if tt.sub != nil {
				subs.On("GetSubscriber", mock.Anything, subscriberID).Return(tt.sub, nil).Once()
			} else {
				subs.On("GetSubscriber", mock.Anything, subscriberID).Return(nil, tt.subErr).Once()
			}
			svc := newService(subs, new(LedgerMock), new(ContentMock))

			got, err := svc.Check(context.Background(), subscriberID, tt.day)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_OpenDay(t *testing.T) {
	day3 := &models.ContentDay{Day: 3, Title: "Gratitud"}

	t.Run("unlocked record serves content", func(t *testing.T) {
		subs, ledger, content := new(SubscribersMock), new(LedgerMock), new(ContentMock)
		subs.On("GetSubscriber", mock.Anything, subscriberID).Return(premium(), nil).Once()
		ledger.On("GetRecord", mock.Anything, subscriberID, 3).
			Return(&models.ProgressRecord{SubscriberID: subscriberID, Day: 3, Unlocked: true}, nil).Once()
		content.On("Get", mock.Anything, 3).Return(day3, nil).Once()

		got, err := newService(subs, ledger, content).OpenDay(context.Background(), subscriberID, 3)
		require.NoError(t, err)
		assert.Equal(t, day3, got)
		ledger.AssertNotCalled(t, "EnsureUnlocked", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("elapsed time latches ledger", func(t *testing.T) {
		subs, ledger, content := new(SubscribersMock), new(LedgerMock), new(ContentMock)
		subs.On("GetSubscriber", mock.Anything, subscriberID).Return(premium(), nil).Once()
		ledger.On("GetRecord", mock.Anything, subscriberID, 3).Return(nil, models.ErrProgressNotFound).Once()
		ledger.On("EnsureUnlocked", mock.Anything, subscriberID, 3).Return(nil).Once()
		content.On("Get", mock.Anything, 3).Return(day3, nil).Once()

		got, err := newService(subs, ledger, content).OpenDay(context.Background(), subscriberID, 3)
		require.NoError(t, err)
		assert.Equal(t, day3, got)
		ledger.AssertExpectations(t)
	})

	t.Run("free plan with unlocked ledger day is still restricted", func(t *testing.T) {
		subs, ledger, content := new(SubscribersMock), new(LedgerMock), new(ContentMock)
		subs.On("GetSubscriber", mock.Anything, subscriberID).Return(free(), nil).Once()

		_, err := newService(subs, ledger, content).OpenDay(context.Background(), subscriberID, 2)
		require.ErrorIs(t, err, models.ErrPlanRestricted)
		ledger.AssertNotCalled(t, "GetRecord", mock.Anything, mock.Anything, mock.Anything)
		content.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("not yet unlocked", func(t *testing.T) {
		subs := new(SubscribersMock)
		subs.On("GetSubscriber", mock.Anything, subscriberID).Return(premium(), nil).Once()

		_, err := newService(subs, new(LedgerMock), new(ContentMock)).OpenDay(context.Background(), subscriberID, 5)
		require.ErrorIs(t, err, models.ErrNotYetUnlocked)
	})

	t.Run("missing content", func(t *testing.T) {
		subs, ledger, content := new(SubscribersMock), new(LedgerMock), new(ContentMock)
		subs.On("GetSubscriber", mock.Anything, subscriberID).Return(free(), nil).Once()
		ledger.On("GetRecord", mock.Anything, subscriberID, 1).
			Return(&models.ProgressRecord{SubscriberID: subscriberID, Day: 1, Unlocked: true}, nil).Once()
		content.On("Get", mock.Anything, 1).Return(nil, models.ErrContentNotFound).Once()

		_, err := newService(subs, ledger, content).OpenDay(context.Background(), subscriberID, 1)
		require.ErrorIs(t, err, models.ErrContentNotFound)
	})

	t.Run("ledger failure", func(t *testing.T) {
		subs, ledger := new(SubscribersMock), new(LedgerMock)
		subs.On("GetSubscriber", mock.Anything, subscriberID).Return(premium(), nil).Once()
		ledger.On("GetRecord", mock.Anything, subscriberID, 2).
			Return(nil, models.ErrStoreUnavailable).Once()

		_, err := newService(subs, ledger, new(ContentMock)).OpenDay(context.Background(), subscriberID, 2)
		require.ErrorIs(t, err, models.ErrStoreUnavailable)
	})
}
