package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// SalonEvent is published whenever a restaurant's floor plan changed.
type SalonEvent struct {
	RestaurantID uint            `json:"restaurant_id"`
	FloorID      *string         `json:"floor_id,omitempty"`
	Entity       string          `json:"entity"`
	EntityID     string          `json:"entity_id,omitempty"`
	Action       string          `json:"action"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	ChangedAt    time.Time       `json:"changed_at"`
}

type Publisher interface {
	Publish(ctx context.Context, evt SalonEvent) error
	Close() error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, SalonEvent) error { return nil }
func (Nop) Close() error { return nil }

// RabbitMQ publishes salon events to a durable fanout exchange.
type RabbitMQ struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	log      *logrus.Entry

	mu sync.Mutex
}

func NewRabbitMQ(url, exchange string, log *logrus.Entry) (*RabbitMQ, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &RabbitMQ{conn: conn, channel: channel, exchange: exchange, log: log}, nil
}

func (r *RabbitMQ) Publish(ctx context.Context, evt SalonEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp channels are not safe for concurrent publishing
	r.mu.Lock()
	defer r.mu.Unlock()

	err = r.channel.PublishWithContext(ctx,
		r.exchange, // exchange
		"",         // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			DeliveryMode: amqp091.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("publish salon event: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"restaurant_id": evt.RestaurantID,
		"entity":        evt.Entity,
		"action":        evt.Action,
	}).Debug("salon event published")
	return nil
}

func (r *RabbitMQ) Close() error {
	if err := r.channel.Close(); err != nil {
		r.conn.Close()
		return err
	}
	return r.conn.Close()
}

// FromURL returns a RabbitMQ publisher, or Nop when url is empty.
func FromURL(url, exchange string, log *logrus.Entry) (Publisher, error) {
	if url == "" {
		return Nop{}, nil
	}
	return NewRabbitMQ(url, exchange, log)
}
