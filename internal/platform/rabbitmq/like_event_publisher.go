package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"postboard/internal/model"
)

type LikeEventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewLikeEventPublisher(conn *amqp.Connection, queueName string) *LikeEventPublisher {
	return &LikeEventPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *LikeEventPublisher) PublishLikeEvent(ctx context.Context, event model.LikeEvent) error {
	msg, err := encodeLikeEvent(event)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if err := DeclareQueue(ch, p.queueName); err != nil {
		return err
	}

	if err := ch.PublishWithContext(ctx, "", p.queueName, false, false, msg); err != nil {
		return fmt.Errorf("publish like event failed: %w", err)
	}
	return nil
}

func encodeLikeEvent(event model.LikeEvent) (amqp.Publishing, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal like event failed: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Body:         payload,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.At,
		Type:         "post.like",
	}, nil
}

// DecodeLikeEvent parses a delivery body produced by PublishLikeEvent.
func DecodeLikeEvent(body []byte) (model.LikeEvent, error) {
	var event model.LikeEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return model.LikeEvent{}, fmt.Errorf("decode like event failed: %w", err)
	}
	if event.PostID == 0 || event.UserID == 0 {
		return model.LikeEvent{}, errors.New("decode like event failed: missing user or post id")
	}
	return event, nil
}
