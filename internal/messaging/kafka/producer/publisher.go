package producer

import (
	"context"

	"github.com/koolkhan8586/hr-management/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// Publisher menerima event outbox yang siap dikirim.
type Publisher interface {
	Publish(ctx context.Context, event kafka.OutboxEvent) error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}
