package events

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

// Client publishes to a durable topic exchange.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// Dial connects to RabbitMQ at url, opens a channel and declares exchange.
func Dial(url, exchange string, logger zerolog.Logger) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchange, err)
	}

	logger.Info().Str("exchange", exchange).Msg("RabbitMQ connected")

	return &Client{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

// Publish sends a persistent JSON message with routingKey.
func (c *Client) Publish(_ context.Context, routingKey string, body []byte) error {
	return c.channel.Publish(
		c.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Channel returns the underlying AMQP channel.
func (c *Client) Channel() *amqp.Channel {
	return c.channel
}

// Close closes the channel and connection for graceful shutdown.
func (c *Client) Close() error {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			return err
		}
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
