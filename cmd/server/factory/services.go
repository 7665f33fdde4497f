package factory

import (
	"errors"
	"fmt"

	"github.com/PixabayGallery/internal/app"
	"github.com/PixabayGallery/internal/domain"
	"github.com/PixabayGallery/internal/infra/notice"
	"github.com/PixabayGallery/internal/infra/render"
	"github.com/PixabayGallery/pkg/config"
)

// NewRenderer creates the card markup renderer.
func NewRenderer() (domain.Renderer, error) {
	return render.NewGalleryRenderer()
}

// NewMessages creates the notice texts for the configured language.
func NewMessages(cfg *config.Config) *notice.Messages {
	return notice.NewMessages(cfg.Language)
}

// NewGalleryService creates the gallery controller with validation.
func NewGalleryService(
	client domain.SearchClient,
	renderer domain.Renderer,
	events domain.EventProducer,
	messages *notice.Messages,
	cfg *config.Config,
) (*app.GalleryService, error) {
	if client == nil {
		return nil, errors.New("search client is nil")
	}
	if renderer == nil {
		return nil, errors.New("renderer is nil")
	}
	if events == nil {
		return nil, errors.New("event producer is nil")
	}
	if cfg.PageSize < config.MinPageSize || cfg.PageSize > config.MaxPageSize {
		return nil, fmt.Errorf("invalid page size: %d (must be %d-%d)", cfg.PageSize, config.MinPageSize, config.MaxPageSize)
	}

	return app.NewGalleryService(client, renderer, events, messages, cfg.PageSize, cfg.EndNoticeDelay), nil
}

// NewSessionStore creates the per-page-load session registry.
func NewSessionStore(cfg *config.Config) (*app.SessionStore, error) {
	if cfg.SessionIdleTimeout <= 0 {
		return nil, fmt.Errorf("invalid session idle timeout: %s", cfg.SessionIdleTimeout)
	}
	return app.NewSessionStore(cfg.PageSize, cfg.SessionIdleTimeout), nil
}
