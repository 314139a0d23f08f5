package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"homework-notifier/internal/models"
)

// Producer publishes notification records to a Kafka topic.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(broker, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(broker),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			WriteTimeout:           10 * time.Second,
			AllowAutoTopicCreation: true,
		},
	}
}

// Message encodes n as a Kafka message keyed by homework name.
func Message(n models.Notification) (kafka.Message, error) {
	value, err := json.Marshal(n)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal notification %s: %w", n.ID, err)
	}
	return kafka.Message{
		Key:   []byte(n.Key()),
		Value: value,
		Time:  n.CreatedAt,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(n.Kind)},
		},
	}, nil
}

// Publish implements the service sink contract.
func (p *Producer) Publish(ctx context.Context, n models.Notification) error {
	msg, err := Message(n)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write notification %s to topic %s: %w", n.ID, p.writer.Topic, err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
