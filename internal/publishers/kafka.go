package publishers

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"github.com/sbilibin2017/gw-transaction-ledger/internal/models"
)

// KafkaWriter defines the kafka writer abstraction used by KafkaPublisher.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// KafkaPublisher delivers events to a Kafka topic, keyed by transaction ID
// so per-transaction messages land on one partition.
type KafkaPublisher struct {
	writer KafkaWriter
}

// NewKafkaPublisher creates a publisher writing to the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
	}
	return &KafkaPublisher{writer: writer}
}

// NewKafkaPublisherWithWriter wires an existing writer, used in tests.
func NewKafkaPublisherWithWriter(writer KafkaWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event models.TransactionCreated) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.TransactionID.String()),
		Value: data,
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
