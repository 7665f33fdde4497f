package domain

import (
	"context"
	"time"
)

// ImageRecord represents one image as returned by the search service.
// Fields are passed through to the renderer untouched.
type ImageRecord struct {
	ID            int64  `json:"id"`
	PageURL       string `json:"page_url"`
	LargeImageURL string `json:"large_image_url"`
	WebformatURL  string `json:"webformat_url"`
	Tags          string `json:"tags"` // Used as alt text
	User          string `json:"user"`
	Likes         int    `json:"likes"`
	Views         int    `json:"views"`
	Comments      int    `json:"comments"`
	Downloads     int    `json:"downloads"`
}

// SearchResultPage is a single page of results. Only TotalHits outlives the request.
type SearchResultPage struct {
	Items     []ImageRecord `json:"items"`
	TotalHits int           `json:"total_hits"` // Hits reachable through the API
	Total     int           `json:"total"`      // Hits that exist upstream
}

// SearchClient performs a single, non-retried search against the remote service.
type SearchClient interface {
	Search(ctx context.Context, query string, page, pageSize int) (SearchResultPage, error)
}

// EventKind tells which transition produced a SearchEvent.
type EventKind string

const (
	EventNewSearch EventKind = "new_search"
	EventLoadMore  EventKind = "load_more"
)

// SearchEvent describes one request made on behalf of a session.
type SearchEvent struct {
	Kind       EventKind `json:"kind"`
	Query      string    `json:"query"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalHits  int       `json:"total_hits"`
	Items      int       `json:"items"`
	Outcome    string    `json:"outcome"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventProducer publishes search events to a queue.
type EventProducer interface {
	Publish(ctx context.Context, event *SearchEvent) error
	Close() error
}
