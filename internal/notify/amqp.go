package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/agroxeque/ortho-gateway/internal/models"
)

const (
	statusRoutingKey = "status"
	publishTimeout   = 5 * time.Second
)

// StatusPublisher mirrors every lifecycle event onto a direct AMQP
// exchange so internal consumers can follow processing state without
// being the webhook destination. Like the webhook, it is
// best-effort only.
type StatusPublisher struct {
	ch       *amqp.Channel
	exchange string
	logger   zerolog.Logger
}

// NewStatusPublisher opens a channel on conn and declares the
// durable status exchange.
func NewStatusPublisher(conn *amqp.Connection, exchange string, logger zerolog.Logger) (*StatusPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("error while declaring exchange %s: %w", exchange, err)
	}

	return &StatusPublisher{ch: ch, exchange: exchange, logger: logger}, nil
}

// Notify publishes the event as a JSON message. Publish failures are
// logged and swallowed.
func (p *StatusPublisher) Notify(ctx context.Context, event models.StatusEvent) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to serialize status event")
		return
	}

	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		statusRoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
	if err != nil {
		p.logger.Error().Err(err).Str("status", event.Status).Msg("failed to publish status event")
		return
	}

	p.logger.Info().Str("status", event.Status).Msg("status event published")
}

// Close releases the underlying channel.
func (p *StatusPublisher) Close() error {
	return p.ch.Close()
}
