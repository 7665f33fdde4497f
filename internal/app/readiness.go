package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"time"

	"github.com/segmentio/kafka-go"
)

type ReadinessWaiter struct {
	upstream     string
	brokers      []string
	topic        string
	pollInterval time.Duration
	dialTimeout  time.Duration
}

// NewReadinessWaiter checks the search upstream and, when brokers are
// given, the Kafka topic search events go to.
func NewReadinessWaiter(upstreamURL string, brokers []string, topic string) (*ReadinessWaiter, error) {
	u, err := url.Parse(upstreamURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream url %q: %w", upstreamURL, err)
	}
	host := u.Host
	if u.Port() == "" {
		port := "443"
		if u.Scheme == "http" {
			port = "80"
		}
		host = net.JoinHostPort(u.Hostname(), port)
	}

	return &ReadinessWaiter{
		upstream:     host,
		brokers:      brokers,
		topic:        topic,
		pollInterval: 2 * time.Second,
		dialTimeout:  2 * time.Second,
	}, nil
}

// WaitForDependencies blocks until Kafka is usable. Without brokers it
// returns immediately; the search upstream is never waited on since it
// lives outside our control.
func (w *ReadinessWaiter) WaitForDependencies(ctx context.Context) error {
	if len(w.brokers) == 0 {
		return nil
	}
	return w.waitForKafka(ctx)
}

// Check reports whether the upstream and the configured Kafka are reachable.
func (w *ReadinessWaiter) Check(ctx context.Context) error {
	if err := w.dial(ctx, w.upstream); err != nil {
		return fmt.Errorf("search upstream unreachable: %w", err)
	}
	if len(w.brokers) > 0 {
		if err := w.checkKafka(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (w *ReadinessWaiter) waitForKafka(ctx context.Context) error {
	slog.Info("Waiting for Kafka...")
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.checkKafka(ctx); err != nil {
				slog.Warn("Kafka not ready yet", "error", err)
				continue
			}
			slog.Info("Kafka is ready")
			return nil
		}
	}
}

func (w *ReadinessWaiter) dial(ctx context.Context, address string) error {
	d := net.Dialer{Timeout: w.dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return err
	}
	return conn.Close()
}

func (w *ReadinessWaiter) checkKafka(ctx context.Context) error {
	for _, broker := range w.brokers {
		if err := w.dial(ctx, broker); err != nil {
			return fmt.Errorf("failed to connect to broker %s: %w", broker, err)
		}
	}

	conn, err := kafka.DialContext(ctx, "tcp", w.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to dial kafka: %w", err)
	}
	defer func() {
		_ = conn.Close()
	}()

	partitions, err := conn.ReadPartitions(w.topic)
	if err != nil {
		return fmt.Errorf("failed to read partitions for topic %s: %w", w.topic, err)
	}
	if len(partitions) == 0 {
		return fmt.Errorf("topic %s has no partitions", w.topic)
	}
	return nil
}
