package domain

import "html/template"

// GalleryContainer is the selector of the element holding rendered cards.
const GalleryContainer = ".gallery"

// Severity classifies a notice.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityFailure Severity = "failure"
	SeverityInfo    Severity = "info"
)

// Notice is a transient message shown to the user.
type Notice struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Renderer maps image records to card markup, preserving order.
type Renderer interface {
	Render(items []ImageRecord) (template.HTML, error)
}

// Gallery is the container accumulating rendered cards.
type Gallery interface {
	ClearGallery()
	AppendToGallery(markup template.HTML)
}

// LoadMoreControl toggles the "load more" affordance.
type LoadMoreControl interface {
	ShowLoadMore()
	HideLoadMore()
}

// Notifier displays notices.
type Notifier interface {
	Notify(n Notice)
}

// Viewer is the lightbox over the gallery. It must be disposed before new
// cards are appended and attached again afterwards.
type Viewer interface {
	Attach(container string)
	Refresh()
	Dispose()
}

// SearchForm is the query input form.
type SearchForm interface {
	ResetForm()
}

// UI bundles every collaborator a transition talks to.
type UI interface {
	Gallery
	LoadMoreControl
	Notifier
	Viewer
	SearchForm
}
