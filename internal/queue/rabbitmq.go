package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/KOFI-GYIMAH/github-digest/internal/models"
	"github.com/KOFI-GYIMAH/github-digest/pkg/errors"
	"github.com/KOFI-GYIMAH/github-digest/pkg/logger"
	"github.com/streadway/amqp"
)

const EmbeddingQueue = "embedding_records"

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RecordPublisher hands prepared records to whatever consumes the embedding
// queue. Nothing is stored by this process.
type RecordPublisher struct {
	conn    *amqp.Connection
	channel channel
	queue   string
}

func NewRecordPublisher(url string) (*RecordPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, queueError("Failed to connect to RabbitMQ", "Could not dial the broker", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, queueError("Failed to open RabbitMQ channel", "Could not open a channel on the broker connection", err)
	}

	return newRecordPublisher(conn, ch, EmbeddingQueue), nil
}

func newRecordPublisher(conn *amqp.Connection, ch channel, queue string) *RecordPublisher {
	return &RecordPublisher{
		conn:    conn,
		channel: ch,
		queue:   queue,
	}
}

// Publish sends one JSON message per record, in order. It stops at the first
// failure and reports how many records went out before it.
func (p *RecordPublisher) Publish(ctx context.Context, records []models.Record) (int, error) {
	queue, err := p.channel.QueueDeclare(
		p.queue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return 0, queueError("Failed to declare queue", fmt.Sprintf("Could not declare queue %s", p.queue), err)
	}

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		body, err := json.Marshal(record)
		if err != nil {
			return i, queueError("Failed to encode record", fmt.Sprintf("Could not encode record %d", i), err)
		}

		err = p.channel.Publish(
			"",
			queue.Name,
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Type:         string(record.Kind()),
				Body:         body,
			},
		)
		if err != nil {
			return i, queueError("Failed to publish record", fmt.Sprintf("Could not publish record %d to %s", i, queue.Name), err)
		}
	}

	logger.Info("Published %d records to %s", len(records), queue.Name)
	return len(records), nil
}

func (p *RecordPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

func queueError(title, detail string, cause error) error {
	return errors.New("QUEUE_ERROR", title, detail, cause, errors.LevelError)
}
