// Package factory provides dependency injection constructors for infrastructure components.
package factory

import (
	"context"
	"log/slog"

	"github.com/PixabayGallery/internal/app"
	"github.com/PixabayGallery/internal/domain"
	"github.com/PixabayGallery/internal/infra/queue"
	"github.com/PixabayGallery/pkg/config"
	"go.uber.org/fx"
)

// NewEventProducer publishes search events to Kafka when brokers are
// configured and drops them otherwise.
func NewEventProducer(cfg *config.Config, lc fx.Lifecycle) domain.EventProducer {
	if !cfg.KafkaEnabled() {
		slog.Info("Kafka brokers not configured, search events disabled")
		return queue.NoopProducer{}
	}

	producer := queue.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return producer.Close()
		},
	})
	return producer
}

// NewReadinessWaiter creates the checker behind /ready and startup waiting.
func NewReadinessWaiter(cfg *config.Config) (*app.ReadinessWaiter, error) {
	var brokers []string
	if cfg.KafkaEnabled() {
		brokers = cfg.KafkaBrokers
	}
	return app.NewReadinessWaiter(cfg.PixabayURL, brokers, cfg.KafkaTopic)
}
