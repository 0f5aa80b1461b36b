package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/estrella-del-alba/internal/models"
)

type ChannelMock struct{ mock.Mock }

func (m *ChannelMock) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(exchange, key, mandatory, immediate, msg).Error(0)
}

func TestPublishDayUnlocked(t *testing.T) {
	event := models.DayUnlockedEvent{
		SubscriberID: "sub-1",
		Email:        "luz@example.com",
		Day:          2,
		Source:       models.UnlockSourceCompletion,
		OccurredAt:   time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
	}

	ch := new(ChannelMock)
	ch.On("Publish", ExchangeProgress, RoutingKeyDayUnlocked, false, false, mock.MatchedBy(func(p amqp.Publishing) bool {
		var got models.DayUnlockedEvent
		if err := json.Unmarshal(p.Body, &got); err != nil {
			return false
		}
		return got == event && p.ContentType == "application/json" && p.DeliveryMode == amqp.Persistent
	})).Return(nil).Once()

	err := NewPublisher(ch).PublishDayUnlocked(context.Background(), event)
	require.NoError(t, err)
	ch.AssertExpectations(t)
}

func TestPublishDayUnlocked_Errors(t *testing.T) {
	t.Run("broker error", func(t *testing.T) {
		ch := new(ChannelMock)
		ch.On("Publish", mock.Anything, mock.Anything, false, false, mock.Anything).
			Return(errors.New("channel closed")).Once()

		err := NewPublisher(ch).PublishDayUnlocked(context.Background(), models.DayUnlockedEvent{Day: 2})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rabbitmq.PublishDayUnlocked")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ch := new(ChannelMock)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewPublisher(ch).PublishDayUnlocked(ctx, models.DayUnlockedEvent{Day: 2})
		assert.ErrorIs(t, err, context.Canceled)
		ch.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPublishMessage_MarshalError(t *testing.T) {
	ch := new(ChannelMock)
	badMsg := struct {
		Ch chan int `json:"ch"`
	}{Ch: make(chan int)}

	err := PublishMessage(ch, "", "queue", badMsg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
}

func TestGetProgressQueues(t *testing.T) {
	queues := GetProgressQueues()
	require.NotEmpty(t, queues)

	assert.Equal(t, QueueDayUnlocked, queues[0].QueueName)
	assert.Equal(t, RoutingKeyDayUnlocked, queues[0].RoutingKey)

	seen := map[string]bool{}
	for _, q := range queues {
		assert.Falsef(t, seen[q.QueueName], "duplicate queue name: %s", q.QueueName)
		seen[q.QueueName] = true
	}
}
