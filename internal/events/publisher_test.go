package events

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

	"github.com/magabrotheeeer/user-auth-service/internal/lib/sl"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := new(MockChannel)
	p := NewAMQPPublisher(ch, "auth.events", sl.Discard())

	e := Event{
		Type:       UserRegistered,
		UserID:     "42",
		Email:      "a@test.com",
		OccurredAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	ch.On("Publish", "auth.events", UserRegistered, false, false, mock.MatchedBy(func(msg amqp.Publishing) bool {
		var got Event
		if err := json.Unmarshal(msg.Body, &got); err != nil {
			return false
		}
		return msg.ContentType == "application/json" &&
			msg.DeliveryMode == amqp.Persistent &&
			got.UserID == "42" &&
			got.Email == "a@test.com" &&
			got.Type == UserRegistered
	})).Return(nil).Once()

	p.Publish(context.Background(), e)
	ch.AssertExpectations(t)
}

func TestAMQPPublisher_PublishErrorIsSwallowed(t *testing.T) {
	ch := new(MockChannel)
	p := NewAMQPPublisher(ch, "auth.events", sl.Discard())

	ch.On("Publish", "auth.events", UserLoggedIn, false, false, mock.Anything).
		Return(errors.New("channel closed")).Once()

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), Event{Type: UserLoggedIn, UserID: "1"})
	})
	ch.AssertExpectations(t)
}

func TestAMQPPublisher_CancelledContext(t *testing.T) {
	ch := new(MockChannel)
	p := NewAMQPPublisher(ch, "auth.events", sl.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p.Publish(ctx, Event{Type: UserLoggedIn})
	ch.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	require.NotPanics(t, func() { p.Publish(context.Background(), Event{Type: UserRegistered}) })
}
