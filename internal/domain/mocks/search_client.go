package mocks

import (
	"context"

	"github.com/PixabayGallery/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSearchClient struct {
	mock.Mock
}

func (m *MockSearchClient) Search(ctx context.Context, query string, page, pageSize int) (domain.SearchResultPage, error) {
	args := m.Called(ctx, query, page, pageSize)

	var result domain.SearchResultPage
	if args.Get(0) != nil {
		result = args.Get(0).(domain.SearchResultPage)
	}

	return result, args.Error(1)
}

type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) Publish(ctx context.Context, event *domain.SearchEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}
