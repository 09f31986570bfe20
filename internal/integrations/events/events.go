package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type тип доменного события
type Type string

const (
	BookingCreated       Type = "booking.created"
	BookingStatusChanged Type = "booking.status_changed"
	SettlementCommitted  Type = "settlement.committed"
	SettlementConfirmed  Type = "settlement.confirmed"
	SystemConfigUpdated  Type = "system_config.updated"
)

// Event конверт события, публикуемого после коммита транзакции
type Event struct {
	ID         string          `json:"id"`
	Type       Type            `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// Publisher публикует события в канал redis
type Publisher struct {
	client  RedisPublisher
	channel string
	timeout time.Duration
	now     func() time.Time
}

// NewPublisher создает издателя событий.
// timeout ограничивает одну публикацию, 0 означает без ограничения.
func NewPublisher(client RedisPublisher, channel string, timeout time.Duration) *Publisher {
	return &Publisher{
		client:  client,
		channel: channel,
		timeout: timeout,
		now:     time.Now,
	}
}

// Publish сериализует payload и публикует событие
func (p *Publisher) Publish(ctx context.Context, eventType Type, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMarshalEvent, eventType, err)
	}

	data, err := json.Marshal(Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: p.now().UTC(),
		Payload:    raw,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMarshalEvent, eventType, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("%w: %s to channel %s: %v", ErrPublish, eventType, p.channel, err)
	}

	return nil
}

// NopPublisher используется, когда redis выключен
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Type, interface{}) error {
	return nil
}
