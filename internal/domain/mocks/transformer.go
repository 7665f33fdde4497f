package mocks

import (
	"io"

	"github.com/PixabayGallery/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTransformer struct {
	mock.Mock
}

func (m *MockTransformer) Transform(reader io.Reader) (domain.SearchResultPage, error) {
	args := m.Called(reader)

	var page domain.SearchResultPage
	if args.Get(0) != nil {
		page = args.Get(0).(domain.SearchResultPage)
	}

	return page, args.Error(1)
}
