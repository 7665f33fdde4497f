package domain

import "math"

// Session is the state of one gallery: the submitted query, the last page
// shown and what the service reported about the total.
type Session struct {
	Query     string
	Page      int
	PageSize  int
	TotalHits int
	HitsKnown bool // false until the first response of the current query
}

// NewSession returns an idle session with no query.
func NewSession(pageSize int) Session {
	return Session{Page: 1, PageSize: pageSize}
}

// Active reports whether a search succeeded with at least one hit.
func (s Session) Active() bool {
	return s.Query != "" && s.HitsKnown && s.TotalHits > 0
}

// HasMore reports whether results beyond the current page remain unseen.
func (s Session) HasMore() bool {
	return s.HitsKnown && s.Page*s.PageSize < s.TotalHits
}

// TotalPages is ceil(TotalHits / PageSize).
func (s Session) TotalPages() int {
	if s.PageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(s.TotalHits) / float64(s.PageSize)))
}
