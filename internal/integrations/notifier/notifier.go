// Package notifier публикация событий жизненного цикла бронирований
// в RabbitMQ. Доставка best-effort: вызывающий код логирует ошибку
// и продолжает работу, бизнес-операция от брокера не зависит.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m1shk4/AquaWash-BookingService/pkg/logger"
)

var (
	// ErrConnect возвращается при ошибке подключения к брокеру
	ErrConnect = errors.New("notifier: failed to connect to broker")

	// ErrPublish возвращается при ошибке публикации сообщения
	ErrPublish = errors.New("notifier: failed to publish event")
)

// Виды событий жизненного цикла бронирования
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingStarted   = "booking.started"
	EventBookingCompleted = "booking.completed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingNoShow    = "booking.no_show"
)

// Event сообщение, публикуемое в очередь
type Event struct {
	Kind          string    `json:"kind"`
	BookingID     int64     `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	CustomerID    int64     `json:"customer_id"`
	CenterID      int64     `json:"center_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Notifier публикует события бронирований
type Notifier interface {
	Notify(ctx context.Context, event Event) error
	Close() error
}

// Client публикует события в durable-очередь RabbitMQ
type Client struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	logs  *logger.Logger
}

// NewClient подключается к брокеру и объявляет очередь событий
func NewClient(url, queue string, logs *logger.Logger) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%w: declare queue %q: %v", ErrConnect, queue, err)
	}

	return &Client{conn: conn, ch: ch, queue: queue, logs: logs}, nil
}

// Notify публикует событие в очередь persistent-сообщением
func (c *Client) Notify(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	err = c.ch.PublishWithContext(ctx,
		"",      // default exchange
		c.queue, // routing key = имя очереди
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: %s for booking %d: %v", ErrPublish, event.Kind, event.BookingID, err)
	}

	c.logs.Debug("Published event %s for booking %s", event.Kind, event.BookingNumber)
	return nil
}

// Close закрывает канал и соединение с брокером
func (c *Client) Close() error {
	if err := c.ch.Close(); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}

// Disabled заглушка на случай выключенного брокера в конфигурации
type Disabled struct{}

// NewDisabled создает notifier, который молча отбрасывает события
func NewDisabled() *Disabled {
	return &Disabled{}
}

func (*Disabled) Notify(ctx context.Context, event Event) error { return nil }

func (*Disabled) Close() error { return nil }
