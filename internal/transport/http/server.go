package http

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/PixabayGallery/internal/app"
	"github.com/PixabayGallery/internal/domain"
	"github.com/PixabayGallery/internal/infra/metrics"
	"github.com/PixabayGallery/pkg/config"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

//go:embed assets
var assets embed.FS

const readyTimeout = 2 * time.Second

// ReadinessChecker reports whether the dependencies the gallery needs are reachable.
type ReadinessChecker interface {
	Check(ctx context.Context) error
}

type Handler struct {
	gallery *app.GalleryService
	store   *app.SessionStore
	ready   ReadinessChecker
	page    *template.Template
	static  http.Handler
}

func NewHandler(gallery *app.GalleryService, store *app.SessionStore, ready ReadinessChecker) (*Handler, error) {
	page, err := template.ParseFS(assets, "assets/index.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page shell: %w", err)
	}
	static, err := fs.Sub(assets, "assets/static")
	if err != nil {
		return nil, err
	}

	return &Handler{
		gallery: gallery,
		store:   store,
		ready:   ready,
		page:    page,
		static:  http.StripPrefix("/static/", http.FileServer(http.FS(static))),
	}, nil
}

// Routes returns the router wrapped in otelhttp.
func (h *Handler) Routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", h.index).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}/search", h.search).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/load-more", h.loadMore).Methods(http.MethodPost)
	r.PathPrefix("/static/").Handler(h.static).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "OK")
	}).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.readiness).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())

	return otelhttp.NewHandler(r, "gallery-http")
}

func NewHTTPServer(cfg *config.Config, gallery *app.GalleryService, store *app.SessionStore, waiter *app.ReadinessWaiter) (*http.Server, error) {
	h, err := NewHandler(gallery, store, waiter)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}, nil
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	id, _ := h.store.Open()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	data := struct {
		SessionID string
		Container string
	}{SessionID: id, Container: domain.GalleryContainer}
	if err := h.page.Execute(w, data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render page shell", "error", err)
	}
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	query := r.PostFormValue("searchQuery")
	h.runTransition(w, r, func(ctx context.Context, ui domain.UI, session domain.Session) (domain.Session, error) {
		return h.gallery.NewSearch(ctx, ui, session, query)
	})
}

func (h *Handler) loadMore(w http.ResponseWriter, r *http.Request) {
	h.runTransition(w, r, func(ctx context.Context, ui domain.UI, session domain.Session) (domain.Session, error) {
		return h.gallery.LoadMore(ctx, ui, session)
	})
}

type transition func(ctx context.Context, ui domain.UI, session domain.Session) (domain.Session, error)

// runTransition serialises triggers per session, streams the UI commands of
// run and stores the session it returns.
func (h *Handler) runTransition(w http.ResponseWriter, r *http.Request, run transition) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	release, err := h.store.Acquire(id)
	if err != nil {
		h.writeError(w, r, id, err)
		return
	}
	defer release()

	session, err := h.store.Get(id)
	if err != nil {
		h.writeError(w, r, id, err)
		return
	}

	ui := newStreamUI(w)
	next, err := run(ctx, ui, session)
	if err != nil && !ui.Started() {
		h.writeError(w, r, id, err)
		return
	}

	if err := h.store.Put(id, next); err != nil {
		slog.WarnContext(ctx, "Session vanished during request", "session", id, "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, id string, err error) {
	status := http.StatusInternalServerError
	reason := "internal"
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status, reason = http.StatusNotFound, "session_not_found"
	case errors.Is(err, domain.ErrTriggerInFlight):
		// counted by the store
		status, reason = http.StatusConflict, ""
	case errors.Is(err, domain.ErrNoActiveSearch):
		status, reason = http.StatusConflict, "no_active_search"
	}
	if reason != "" {
		metrics.RejectedTriggers.WithLabelValues(reason).Inc()
	}

	slog.DebugContext(r.Context(), "Rejected trigger", "session", id, "path", r.URL.Path, "status", status, "error", err)
	http.Error(w, err.Error(), status)
}

func (h *Handler) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.ready.Check(ctx); err != nil {
		slog.WarnContext(ctx, "Readiness check failed", "error", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "READY")
}
