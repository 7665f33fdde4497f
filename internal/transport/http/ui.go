package http

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/PixabayGallery/internal/domain"
)

const ndjsonContentType = "application/x-ndjson"

// command is one line of the stream the browser shell replays against the DOM.
type command struct {
	Op        string          `json:"op"`
	HTML      template.HTML   `json:"html,omitempty"`
	Visible   *bool           `json:"visible,omitempty"`
	Severity  domain.Severity `json:"severity,omitempty"`
	Message   string          `json:"message,omitempty"`
	Action    string          `json:"action,omitempty"`
	Container string          `json:"container,omitempty"`
}

// streamUI implements domain.UI by writing one NDJSON command per call and
// flushing it straight away. The status line is written with the first
// command, so a transition that touches nothing leaves the response open
// for an error status.
type streamUI struct {
	w       http.ResponseWriter
	enc     *json.Encoder
	flusher http.Flusher
	started bool
	err     error
}

var _ domain.UI = (*streamUI)(nil)

func newStreamUI(w http.ResponseWriter) *streamUI {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	flusher, _ := w.(http.Flusher)
	return &streamUI{w: w, enc: enc, flusher: flusher}
}

func (u *streamUI) Started() bool {
	return u.started
}

func (u *streamUI) emit(cmd command) {
	if u.err != nil {
		return
	}
	if !u.started {
		u.w.Header().Set("Content-Type", ndjsonContentType)
		u.w.Header().Set("Cache-Control", "no-store")
		u.w.WriteHeader(http.StatusOK)
		u.started = true
	}
	if err := u.enc.Encode(cmd); err != nil {
		// The client went away; the transition still runs to completion.
		slog.Debug("Dropping UI command stream", "op", cmd.Op, "error", err)
		u.err = err
		return
	}
	if u.flusher != nil {
		u.flusher.Flush()
	}
}

func (u *streamUI) ClearGallery() {
	u.emit(command{Op: "clear"})
}

func (u *streamUI) AppendToGallery(markup template.HTML) {
	u.emit(command{Op: "append", HTML: markup})
}

func (u *streamUI) ShowLoadMore() {
	visible := true
	u.emit(command{Op: "load_more", Visible: &visible})
}

func (u *streamUI) HideLoadMore() {
	visible := false
	u.emit(command{Op: "load_more", Visible: &visible})
}

func (u *streamUI) Notify(n domain.Notice) {
	u.emit(command{Op: "notify", Severity: n.Severity, Message: n.Message})
}

func (u *streamUI) Attach(container string) {
	u.emit(command{Op: "viewer", Action: "attach", Container: container})
}

func (u *streamUI) Refresh() {
	u.emit(command{Op: "viewer", Action: "refresh", Container: domain.GalleryContainer})
}

func (u *streamUI) Dispose() {
	u.emit(command{Op: "viewer", Action: "dispose", Container: domain.GalleryContainer})
}

func (u *streamUI) ResetForm() {
	u.emit(command{Op: "reset_form"})
}
