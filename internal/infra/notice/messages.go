package notice

import (
	"github.com/PixabayGallery/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	emptyQuery  = "The search bar cannot be empty. Please type any criteria in the search bar."
	noResults   = "Sorry, there are no images matching your search query. Please try again."
	found       = "Hooray! We found %d images."
	endOfSearch = "We're sorry, but you've reached the end of search results."
	failed      = "Something went wrong while searching. Please try again. (ref %s)"
)

// Messages builds the notices shown to the user, formatting numbers for
// the configured language.
type Messages struct {
	printer *message.Printer
}

func NewMessages(lang string) *Messages {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Messages{printer: message.NewPrinter(tag)}
}

func (m *Messages) EmptyQuery() domain.Notice {
	return domain.Notice{Severity: domain.SeverityFailure, Message: m.printer.Sprintf(emptyQuery)}
}

func (m *Messages) NoResults() domain.Notice {
	return domain.Notice{Severity: domain.SeverityFailure, Message: m.printer.Sprintf(noResults)}
}

func (m *Messages) Found(totalHits int) domain.Notice {
	return domain.Notice{Severity: domain.SeveritySuccess, Message: m.printer.Sprintf(found, totalHits)}
}

func (m *Messages) EndOfSearch() domain.Notice {
	return domain.Notice{Severity: domain.SeverityFailure, Message: m.printer.Sprintf(endOfSearch)}
}

// RequestFailed carries ref so the user can quote it against the logs.
func (m *Messages) RequestFailed(ref string) domain.Notice {
	return domain.Notice{Severity: domain.SeverityFailure, Message: m.printer.Sprintf(failed, ref)}
}
