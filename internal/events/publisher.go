// Package events публикует события аутентификации в RabbitMQ.
// Публикация best-effort: ошибки только логируются.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/user-auth-service/internal/lib/sl"
)

// Типы событий, они же routing key.
const (
	UserRegistered = "user.registered"
	UserLoggedIn   = "user.logged_in"
)

// Event сообщение о действии пользователя.
type Event struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher отправляет события. Реализации не возвращают ошибок вызывающему.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Channel часть amqp.Channel, нужная для публикации.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPPublisher публикует события в exchange.
type AMQPPublisher struct {
	mu       sync.Mutex
	ch       Channel
	exchange string
	log      *slog.Logger
}

// NewAMQPPublisher создает публикатор поверх канала.
func NewAMQPPublisher(ch Channel, exchange string, log *slog.Logger) *AMQPPublisher {
	return &AMQPPublisher{ch: ch, exchange: exchange, log: log}
}

// Publish сериализует событие и публикует его с routing key равным типу события.
func (p *AMQPPublisher) Publish(ctx context.Context, e Event) {
	const op = "events.Publish"
	log := p.log.With(slog.String("op", op), slog.String("event", e.Type))

	select {
	case <-ctx.Done():
		log.Warn("event dropped", sl.Err(ctx.Err()))
		return
	default:
	}

	if err := p.publish(e); err != nil {
		log.Error("failed to publish event", sl.Err(err))
		return
	}
	log.Debug("event published", slog.String("user_id", e.UserID))
}

func (p *AMQPPublisher) publish(e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Publish(
		p.exchange,
		e.Type,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    e.OccurredAt,
		},
	)
}

// Noop ничего не публикует. Используется, когда RabbitMQ не настроен.
type Noop struct{}

// Publish ничего не делает.
func (Noop) Publish(context.Context, Event) {}
