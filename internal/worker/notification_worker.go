package worker

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"postboard/internal/model"
	"postboard/internal/platform/rabbitmq"
)

type LikeEventHandler interface {
	HandleLikeEvent(ctx context.Context, event model.LikeEvent) error
}

type ack int

const (
	ackDone ack = iota
	nackDrop
	nackRequeue
)

// NotificationWorker turns like events from the queue into notifications.
type NotificationWorker struct {
	conn      *amqp.Connection
	handler   LikeEventHandler
	queueName string
	logger    *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewNotificationWorker(conn *amqp.Connection, handler LikeEventHandler, queueName string, logger *zap.Logger) *NotificationWorker {
	return &NotificationWorker{
		conn:      conn,
		handler:   handler,
		queueName: queueName,
		logger:    logger,
	}
}

func (w *NotificationWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	if err := ch.Qos(16, 0, false); err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("set worker qos failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				switch w.handle(workerCtx, d.Body) {
				case ackDone:
					_ = d.Ack(false)
				case nackDrop:
					_ = d.Nack(false, false)
				case nackRequeue:
					_ = d.Nack(false, !d.Redelivered)
				}
			}
		}
	}()

	w.logger.Info("notification worker started", zap.String("queue", w.queueName))
	return nil
}

// handle decides the fate of one delivery. Undecodable bodies are dropped;
// a failed write is requeued once.
func (w *NotificationWorker) handle(ctx context.Context, body []byte) ack {
	event, err := rabbitmq.DecodeLikeEvent(body)
	if err != nil {
		w.logger.Warn("worker drop like event", zap.Error(err))
		return nackDrop
	}

	if err := w.handler.HandleLikeEvent(ctx, event); err != nil {
		w.logger.Error("worker handle like event failed",
			zap.Uint("user_id", event.UserID),
			zap.Uint("post_id", event.PostID),
			zap.Error(err),
		)
		return nackRequeue
	}
	return ackDone
}

func (w *NotificationWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
