package factory

import (
	"fmt"
	"log/slog"

	"github.com/PixabayGallery/internal/domain"
	"github.com/PixabayGallery/internal/infra/provider"
	"github.com/PixabayGallery/internal/infra/transformer"
	"github.com/PixabayGallery/pkg/config"
)

// NewSearchClient creates the Pixabay client behind its circuit breaker.
func NewSearchClient(cfg *config.Config) (domain.SearchClient, error) {
	tr, err := transformer.GetTransformer(transformer.PixabayName)
	if err != nil {
		return nil, err
	}

	p, err := provider.NewPixabayProvider(cfg.PixabayURL, cfg.PixabayKey, cfg.RequestTimeout, tr)
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}
	slog.Info("Registered search client", "provider", p.GetName(), "url", cfg.PixabayURL, "timeout", cfg.RequestTimeout)
	return p, nil
}
