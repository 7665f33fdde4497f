package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/PixabayGallery/internal/domain"
	"github.com/PixabayGallery/internal/infra/metrics"
	"github.com/PixabayGallery/pkg/logging"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxErrorBody bounds how much of an error response is kept in HTTPError.
const maxErrorBody = 512

// PixabayProvider is the search client for the Pixabay API. Every Search is
// exactly one GET; the circuit breaker only short-circuits calls while the
// upstream is failing and never re-issues a request.
type PixabayProvider struct {
	name        string
	endpoint    *url.URL
	apiKey      string
	client      *http.Client
	transformer domain.Transformer
	cb          *gobreaker.CircuitBreaker
	sampler     *logging.ErrorSampler
}

func NewPixabayProvider(endpoint, apiKey string, timeout time.Duration, transformer domain.Transformer) (*PixabayProvider, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid pixabay endpoint %q: %w", endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid pixabay endpoint %q: scheme and host required", endpoint)
	}
	if transformer == nil {
		return nil, errors.New("transformer is nil")
	}

	name := "pixabay"
	cbSettings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if we have 3 consecutive failures
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			// A rejected query is the caller's problem, not an unhealthy upstream
			var httpErr *domain.HTTPError
			if errors.As(err, &httpErr) {
				return httpErr.StatusCode < 500 && httpErr.StatusCode != http.StatusTooManyRequests
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("CircuitBreaker state changed", "name", name, "from", from, "to", to)
			metrics.CircuitBreakerState.Set(float64(to))
		},
	}

	return &PixabayProvider{
		name:     name,
		endpoint: u,
		apiKey:   apiKey,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		transformer: transformer,
		cb:          gobreaker.NewCircuitBreaker(cbSettings),
		sampler:     logging.NewErrorSampler(10),
	}, nil
}

func (p *PixabayProvider) GetName() string {
	return p.name
}

// Search fetches one page of photos matching query.
func (p *PixabayProvider) Search(ctx context.Context, query string, page, pageSize int) (domain.SearchResultPage, error) {
	if page < 1 {
		return domain.SearchResultPage{}, fmt.Errorf("invalid page %d: must be positive", page)
	}
	if pageSize < 1 {
		return domain.SearchResultPage{}, fmt.Errorf("invalid page size %d: must be positive", pageSize)
	}

	requestURL := p.buildURL(query, page, pageSize)
	slog.Debug("Searching images", "provider", p.name, "query", query, "page", page, "page_size", pageSize)

	start := time.Now()
	result, err := p.cb.Execute(func() (interface{}, error) {
		return p.fetchPage(ctx, requestURL)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &domain.NetworkError{Err: err}
		}
		p.recordFailure(ctx, err, query, page, time.Since(start))
		return domain.SearchResultPage{}, fmt.Errorf("pixabay search failed: %w", err)
	}

	metrics.UpstreamRequestDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	p.sampler.Reset("network")

	resultPage := result.(domain.SearchResultPage)
	slog.Debug("Fetched page",
		"provider", p.name,
		"query", query,
		"page", page,
		"items", len(resultPage.Items),
		"total_hits", resultPage.TotalHits)
	return resultPage, nil
}

func (p *PixabayProvider) buildURL(query string, page, pageSize int) string {
	u := *p.endpoint
	q := u.Query()
	q.Set("key", p.apiKey)
	q.Set("q", query)
	q.Set("image_type", "photo")
	q.Set("orientation", "horizontal")
	q.Set("safesearch", "true")
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(pageSize))
	u.RawQuery = q.Encode()
	return u.String()
}

func (p *PixabayProvider) fetchPage(ctx context.Context, requestURL string) (domain.SearchResultPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return domain.SearchResultPage{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.SearchResultPage{}, &domain.NetworkError{Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.SearchResultPage{}, &domain.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    string(body),
		}
	}

	page, err := p.transformer.Transform(resp.Body)
	if err != nil {
		return domain.SearchResultPage{}, fmt.Errorf("failed to transform response from %s: %w", p.name, err)
	}
	return page, nil
}

func (p *PixabayProvider) recordFailure(ctx context.Context, err error, query string, page int, elapsed time.Duration) {
	reason := "decode"
	var httpErr *domain.HTTPError
	var netErr *domain.NetworkError
	switch {
	case errors.As(err, &httpErr):
		reason = fmt.Sprintf("http_%d", httpErr.StatusCode)
	case errors.As(err, &netErr):
		reason = "network"
	}

	metrics.UpstreamErrors.WithLabelValues(reason).Inc()
	metrics.UpstreamRequestDuration.WithLabelValues("error").Observe(elapsed.Seconds())
	p.sampler.Error(ctx, reason, "Pixabay request failed", "provider", p.name, "query", query, "page", page, "error", err)
}
