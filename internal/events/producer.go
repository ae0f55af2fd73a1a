package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaProducer publishes order confirmations to a Kafka topic.
type KafkaProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaProducer(brokers, topic string, logger *zap.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaProducer{writer: writer, logger: logger}
}

func (p *KafkaProducer) PublishOrderConfirmation(ctx context.Context, event OrderConfirmationEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal confirmation event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("ORDER#%d", event.OrderID)),
		Value: eventBytes,
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish confirmation event: %w", err)
	}

	p.logger.Info("Order confirmation published",
		zap.String("event_id", event.EventID),
		zap.Int64("order_id", event.OrderID))
	return nil
}

func (p *KafkaProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// NopProducer drops confirmations. Used when no brokers are configured.
type NopProducer struct{}

func (NopProducer) PublishOrderConfirmation(context.Context, OrderConfirmationEvent) error {
	return nil
}

func (NopProducer) Close() error { return nil }
