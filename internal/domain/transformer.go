package domain

import "io"

// Transformer defines the interface for decoding a raw response body into a result page.
type Transformer interface {
	Transform(reader io.Reader) (SearchResultPage, error)
}
