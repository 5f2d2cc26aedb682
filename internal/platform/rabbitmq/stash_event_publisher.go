package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StashEvent is the payload pushed onto the stash event queue whenever a
// stash is created or deleted. Nothing in this process consumes it; the
// queue exists for external audit/automation consumers.
type StashEvent struct {
	Event  string `json:"event"`
	URLID  string `json:"url_id"`
	UserID string `json:"user_id"`
	URL    string `json:"url,omitempty"`
}

type StashEventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewStashEventPublisher(conn *amqp.Connection, queueName string) *StashEventPublisher {
	return &StashEventPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *StashEventPublisher) Publish(ctx context.Context, event StashEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare stash event queue failed: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal stash event failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish stash event failed: %w", err)
	}
	return nil
}
