package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/PixabayGallery/internal/domain"
	"github.com/PixabayGallery/internal/infra/metrics"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducer struct {
	writer messageWriter
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{}, // Same query lands on the same partition
		Async:    true,
	}
	slog.Info("Kafka Producer initialized", "brokers", brokers, "topic", topic)
	return &KafkaProducer{writer: w}
}

func (p *KafkaProducer) Publish(ctx context.Context, event *domain.SearchEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.Query),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.Error("Failed to write to kafka", "error", err)
		metrics.EventsPublished.WithLabelValues("error").Inc()
		return err
	}

	metrics.EventsPublished.WithLabelValues("ok").Inc()
	slog.Debug("Published search event to Kafka", "kind", event.Kind, "query", event.Query, "page", event.Page)
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NoopProducer drops events. Used when no brokers are configured.
type NoopProducer struct{}

func (NoopProducer) Publish(context.Context, *domain.SearchEvent) error { return nil }

func (NoopProducer) Close() error { return nil }
