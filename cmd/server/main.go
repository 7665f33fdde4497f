package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/PixabayGallery/cmd/server/factory"
	"github.com/PixabayGallery/internal/app"
	"github.com/PixabayGallery/internal/infra/tracing"
	transport "github.com/PixabayGallery/internal/transport/http"
	"github.com/PixabayGallery/pkg/config"
	"github.com/PixabayGallery/pkg/logging"
	"go.uber.org/fx"
)

const dependencyWaitTimeout = 60 * time.Second

func main() {
	logging.Setup(slog.LevelInfo)

	fx.New(
		fx.Provide(
			// Config
			config.Load,

			// Infrastructure
			factory.NewEventProducer,
			factory.NewReadinessWaiter,

			// Search client
			factory.NewSearchClient,

			// Services
			factory.NewRenderer,
			factory.NewMessages,
			factory.NewGalleryService,
			factory.NewSessionStore,

			// HTTP Server
			transport.NewHTTPServer,
		),
		fx.Invoke(
			ConfigureLogging,
			SetupTracer,
			WaitForReady, // Block until dependencies are ready
			RegisterHooks,
			StartServer,
		),
	).Run()
}

// --- Invokers ---

func ConfigureLogging(cfg *config.Config) {
	logging.Setup(cfg.SlogLevel())
}

func RegisterHooks(lc fx.Lifecycle, store *app.SessionStore) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go store.Run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}

func SetupTracer(lc fx.Lifecycle, cfg *config.Config) error {
	if !cfg.TracingEnabled {
		slog.Info("Tracing disabled")
		return nil
	}

	ctx := context.Background()
	shutdown, err := tracing.InitTracer(ctx, "pixabay-gallery")
	if err != nil {
		slog.Error("Failed to initialize tracer", "error", err)
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Info("Shutting down tracer provider")
			return shutdown(ctx)
		},
	})
	return nil
}

// WaitForReady blocks until the event broker is ready.
func WaitForReady(waiter *app.ReadinessWaiter) error {
	ctx, cancel := context.WithTimeout(context.Background(), dependencyWaitTimeout)
	defer cancel()
	return waiter.WaitForDependencies(ctx)
}

func StartServer(lc fx.Lifecycle, server *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				slog.Info("Starting gallery server", "address", server.Addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					slog.Error("HTTP server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
