// internal/app/system/tasks/publisher.go
package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dalemusser/recoveryhub/internal/domain/models"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// EventType is the AMQP message type of a task announcement.
const EventType = "task.created"

// Event is the JSON body published for each task.
type Event struct {
	TaskID         int64          `json:"Task_Id"`
	TemplateTaskID int64          `json:"Template_Task_Id"`
	TaskType       string         `json:"task_type"`
	Parameters     map[string]any `json:"parameters"`
	CreatedBy      string         `json:"Created_By"`
	CreatedDate    time.Time      `json:"Created_Date"`
}

// EventFor converts a stored task to its published form.
func EventFor(t models.Task) Event {
	return Event{
		TaskID:         t.TaskID,
		TemplateTaskID: t.TemplateTaskID,
		TaskType:       t.TaskType,
		Parameters:     t.Parameters,
		CreatedBy:      t.CreatedBy,
		CreatedDate:    t.CreatedDate,
	}
}

// AMQPPublisher publishes to a durable queue on the default exchange.
// The connection is opened lazily and re-opened after a failure.
type AMQPPublisher struct {
	url   string
	queue string
	log   *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url, queue string, logger *zap.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: queue, log: logger}
}

func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.closeLocked()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	p.log.Info("connected to message broker", zap.String("queue", p.queue))
	return ch, nil
}

// Publish sends one persistent JSON message for t.
func (p *AMQPPublisher) Publish(ctx context.Context, t models.Task) error {
	body, err := json.Marshal(EventFor(t))
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Type:         EventType,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.closeLocked()
		return fmt.Errorf("amqp publish: %w", err)
	}
	return nil
}

// Close releases the broker connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}

func (p *AMQPPublisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
