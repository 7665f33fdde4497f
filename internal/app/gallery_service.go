package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PixabayGallery/internal/domain"
	"github.com/PixabayGallery/internal/infra/metrics"
	"github.com/PixabayGallery/internal/infra/notice"
	"github.com/rs/xid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "pixabay-gallery"

// GalleryService drives the gallery through its two transitions, NewSearch
// and LoadMore. It holds no per-user state: each transition takes the
// current session and returns the next one.
type GalleryService struct {
	client         domain.SearchClient
	renderer       domain.Renderer
	events         domain.EventProducer
	messages       *notice.Messages
	pageSize       int
	endNoticeDelay time.Duration
	sleep          func(ctx context.Context, d time.Duration) error
}

func NewGalleryService(
	client domain.SearchClient,
	renderer domain.Renderer,
	events domain.EventProducer,
	messages *notice.Messages,
	pageSize int,
	endNoticeDelay time.Duration,
) *GalleryService {
	return &GalleryService{
		client:         client,
		renderer:       renderer,
		events:         events,
		messages:       messages,
		pageSize:       pageSize,
		endNoticeDelay: endNoticeDelay,
		sleep:          sleepContext,
	}
}

func (s *GalleryService) PageSize() int {
	return s.pageSize
}

// NewSearch starts a search for rawQuery. Every outcome is reported to the UI
// here; the returned error only tells the caller which outcome it was.
func (s *GalleryService) NewSearch(ctx context.Context, ui domain.UI, session domain.Session, rawQuery string) (domain.Session, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "NewSearch")
	defer span.End()

	query := strings.TrimSpace(rawQuery)
	if query == "" {
		ui.Notify(s.messages.EmptyQuery())
		metrics.TransitionsTotal.WithLabelValues(string(domain.EventNewSearch), "empty_query").Inc()
		return session, domain.ErrEmptyQuery
	}
	defer ui.ResetForm()

	ui.ClearGallery()
	ui.HideLoadMore()
	next := domain.Session{Query: query, Page: 1, PageSize: s.pageSize}
	span.SetAttributes(attribute.String("query", query))

	page, err := s.client.Search(ctx, query, next.Page, next.PageSize)
	if err != nil {
		s.reportFailure(ctx, ui, span, domain.EventNewSearch, next, err)
		return next, fmt.Errorf("new search %q: %w", query, err)
	}

	next.TotalHits = page.TotalHits
	next.HitsKnown = true
	metrics.TotalHits.Observe(float64(page.TotalHits))
	span.SetAttributes(attribute.Int("total_hits", page.TotalHits))

	if page.TotalHits == 0 {
		ui.Notify(s.messages.NoResults())
		s.complete(ctx, domain.EventNewSearch, next, 0, "no_results")
		return next, domain.ErrNoResults
	}

	if err := s.appendPage(ui, page.Items); err != nil {
		s.reportFailure(ctx, ui, span, domain.EventNewSearch, next, err)
		return next, fmt.Errorf("new search %q: %w", query, err)
	}
	ui.Attach(domain.GalleryContainer)
	ui.Refresh()
	ui.Notify(s.messages.Found(page.TotalHits))

	if next.HasMore() {
		ui.ShowLoadMore()
	}

	s.complete(ctx, domain.EventNewSearch, next, len(page.Items), "ok")
	return next, nil
}

// LoadMore appends the next page of the session's query. It requires a
// session with pages left; anything else is a caller error and leaves the
// UI untouched.
func (s *GalleryService) LoadMore(ctx context.Context, ui domain.UI, session domain.Session) (domain.Session, error) {
	if !session.Active() || !session.HasMore() {
		metrics.TransitionsTotal.WithLabelValues(string(domain.EventLoadMore), "rejected").Inc()
		return session, domain.ErrNoActiveSearch
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "LoadMore")
	defer span.End()

	next := session
	next.Page = session.Page + 1
	span.SetAttributes(attribute.String("query", next.Query), attribute.Int("page", next.Page))

	// The viewer indexes the cards it was attached to.
	ui.Dispose()

	page, err := s.client.Search(ctx, next.Query, next.Page, next.PageSize)
	if err != nil {
		ui.Attach(domain.GalleryContainer)
		ui.Refresh()
		s.reportFailure(ctx, ui, span, domain.EventLoadMore, next, err)
		// page stays where it was so the same page is requested again
		return session, fmt.Errorf("load page %d of %q: %w", next.Page, next.Query, err)
	}

	if err := s.appendPage(ui, page.Items); err != nil {
		ui.Attach(domain.GalleryContainer)
		ui.Refresh()
		s.reportFailure(ctx, ui, span, domain.EventLoadMore, next, err)
		return session, fmt.Errorf("load page %d of %q: %w", next.Page, next.Query, err)
	}
	ui.Attach(domain.GalleryContainer)
	ui.Refresh()

	next.TotalHits = page.TotalHits
	if next.Page >= next.TotalPages() {
		ui.HideLoadMore()
		if err := s.sleep(ctx, s.endNoticeDelay); err != nil {
			slog.Debug("End of results notice dropped", "query", next.Query, "error", err)
		} else {
			ui.Notify(s.messages.EndOfSearch())
		}
	}

	s.complete(ctx, domain.EventLoadMore, next, len(page.Items), "ok")
	return next, nil
}

func (s *GalleryService) appendPage(ui domain.Gallery, items []domain.ImageRecord) error {
	markup, err := s.renderer.Render(items)
	if err != nil {
		return err
	}
	ui.AppendToGallery(markup)
	metrics.ItemsRendered.Add(float64(len(items)))
	return nil
}

func (s *GalleryService) reportFailure(ctx context.Context, ui domain.Notifier, span trace.Span, kind domain.EventKind, session domain.Session, err error) {
	ref := xid.New().String()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	slog.ErrorContext(ctx, "Search failed",
		"kind", kind,
		"query", session.Query,
		"page", session.Page,
		"ref", ref,
		"error", err)

	ui.Notify(s.messages.RequestFailed(ref))
	s.complete(ctx, kind, session, 0, "error")
}

func (s *GalleryService) complete(ctx context.Context, kind domain.EventKind, session domain.Session, items int, outcome string) {
	metrics.TransitionsTotal.WithLabelValues(string(kind), outcome).Inc()
	slog.InfoContext(ctx, "Gallery transition",
		"kind", kind,
		"query", session.Query,
		"page", session.Page,
		"total_hits", session.TotalHits,
		"items", items,
		"outcome", outcome)

	event := &domain.SearchEvent{
		Kind:       kind,
		Query:      session.Query,
		Page:       session.Page,
		PageSize:   session.PageSize,
		TotalHits:  session.TotalHits,
		Items:      items,
		Outcome:    outcome,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "Failed to publish search event", "kind", kind, "query", session.Query, "error", err)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
