package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/PixabayGallery/internal/infra/transformer"
	"github.com/PixabayGallery/pkg/logging"
	"github.com/gorilla/mux"
)

const (
	noResultsQuery = "zzzzznoresults"
	defaultPerPage = 20
	defaultHits    = 500
)

// hitsFor returns how many results the mock reports for q.
func hitsFor(q string) int {
	switch strings.ToLower(strings.TrimSpace(q)) {
	case noResultsQuery:
		return 0
	case "cats":
		return 95
	default:
		return defaultHits
	}
}

func writeError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	_, _ = fmt.Fprint(w, msg)
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if params.Get("key") == "" {
		writeError(w, "[ERROR 400] Invalid or missing API key")
		return
	}

	page, err := intParam(r, "page", 1)
	if err != nil || page < 1 {
		writeError(w, `[ERROR 400] "page" is out of valid range.`)
		return
	}
	perPage, err := intParam(r, "per_page", defaultPerPage)
	if err != nil || perPage < 3 || perPage > 200 {
		writeError(w, `[ERROR 400] "per_page" is out of valid range.`)
		return
	}

	q := params.Get("q")
	totalHits := hitsFor(q)
	first := (page - 1) * perPage
	if page > 1 && first >= totalHits {
		writeError(w, `[ERROR 400] "page" is out of valid range.`)
		return
	}

	last := min(first+perPage, totalHits)
	resp := transformer.PixabayResponse{
		Total:     totalHits,
		TotalHits: totalHits,
		Hits:      make([]transformer.PixabayHit, 0, max(last-first, 0)),
	}
	for i := first; i < last; i++ {
		id := int64(1000 + i)
		resp.Hits = append(resp.Hits, transformer.PixabayHit{
			ID:            id,
			PageURL:       fmt.Sprintf("https://pixabay.com/photos/%d/", id),
			Type:          "photo",
			Tags:          fmt.Sprintf("%s, mock, %d", q, i+1),
			PreviewURL:    fmt.Sprintf("https://picsum.photos/seed/%d/150/100", id),
			WebformatURL:  fmt.Sprintf("https://picsum.photos/seed/%d/640/427", id),
			LargeImageURL: fmt.Sprintf("https://picsum.photos/seed/%d/1280/853", id),
			Views:         (i + 1) * 97,
			Downloads:     (i + 1) * 41,
			Likes:         (i + 1) * 7,
			Comments:      i % 13,
			User:          "mockuser",
		})
	}

	slog.Info("Served search", "q", q, "page", page, "per_page", perPage, "hits", len(resp.Hits), "total_hits", totalHits)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func main() {
	logging.Setup(slog.LevelInfo)

	addr := ":8081"
	if port := os.Getenv("MOCK_PORT"); port != "" {
		addr = ":" + port
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/", search).Methods(http.MethodGet)

	slog.Info("Mock Pixabay server running", "address", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
