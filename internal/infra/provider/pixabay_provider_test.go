package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PixabayGallery/internal/domain"
	"github.com/PixabayGallery/internal/domain/mocks"
	"github.com/PixabayGallery/internal/infra/transformer"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, url string, tr domain.Transformer) *PixabayProvider {
	t.Helper()
	p, err := NewPixabayProvider(url, "secret-key", 2*time.Second, tr)
	require.NoError(t, err)
	return p
}

func TestPixabayProvider_Search_RequestParameters(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total":95,"totalHits":95,"hits":[{"id":1,"tags":"cat"},{"id":2,"tags":"kitten"}]}`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL+"/api/", transformer.NewPixabayTransformer())

	page, err := p.Search(context.Background(), "black cats & dogs", 2, 40)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/api/", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "secret-key", q.Get("key"))
	assert.Equal(t, "black cats & dogs", q.Get("q"))
	assert.Equal(t, "photo", q.Get("image_type"))
	assert.Equal(t, "horizontal", q.Get("orientation"))
	assert.Equal(t, "true", q.Get("safesearch"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "40", q.Get("per_page"))

	assert.Equal(t, 95, page.TotalHits)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(1), page.Items[0].ID)
	assert.Equal(t, int64(2), page.Items[1].ID)
}

func TestPixabayProvider_Search_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`[ERROR 400] "page" is out of valid range.`))
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL, transformer.NewPixabayTransformer())

	_, err := p.Search(context.Background(), "cats", 99, 40)
	require.Error(t, err)

	var httpErr *domain.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Contains(t, httpErr.Message, "out of valid range")
}

func TestPixabayProvider_Search_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	p := newTestProvider(t, url, transformer.NewPixabayTransformer())

	_, err := p.Search(context.Background(), "cats", 1, 40)

	var netErr *domain.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestPixabayProvider_Search_NoRetry(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL, transformer.NewPixabayTransformer())

	_, err := p.Search(context.Background(), "cats", 1, 40)
	assert.Error(t, err)
	assert.Equal(t, int32(1), hits.Load(), "a failed search must not be retried")
}

func TestPixabayProvider_Search_CircuitBreakerOpens(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL, transformer.NewPixabayTransformer())

	for i := 0; i < 3; i++ {
		_, err := p.Search(context.Background(), "cats", 1, 40)
		require.Error(t, err)
	}

	_, err := p.Search(context.Background(), "cats", 1, 40)
	require.Error(t, err)

	var netErr *domain.NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, int32(3), hits.Load(), "open breaker must not reach the upstream")
}

func TestPixabayProvider_Search_ClientErrorsDoNotTrip(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	p := newTestProvider(t, server.URL, transformer.NewPixabayTransformer())

	for i := 0; i < 5; i++ {
		_, err := p.Search(context.Background(), "cats", 1, 40)
		var httpErr *domain.HTTPError
		require.ErrorAs(t, err, &httpErr)
	}
	assert.Equal(t, int32(5), hits.Load())
}

func TestPixabayProvider_Search_TransformError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	mockTransformer := new(mocks.MockTransformer)
	mockTransformer.On("Transform", mock.Anything).Return(nil, errors.New("boom")).Once()

	p := newTestProvider(t, server.URL, mockTransformer)

	_, err := p.Search(context.Background(), "cats", 1, 40)
	assert.ErrorContains(t, err, "failed to transform response")
	mockTransformer.AssertExpectations(t)
}

func TestPixabayProvider_Search_InvalidArguments(t *testing.T) {
	mockTransformer := new(mocks.MockTransformer)
	p := newTestProvider(t, "https://pixabay.com/api/", mockTransformer)

	_, err := p.Search(context.Background(), "cats", 0, 40)
	assert.ErrorContains(t, err, "invalid page")

	_, err = p.Search(context.Background(), "cats", 1, 0)
	assert.ErrorContains(t, err, "invalid page size")

	mockTransformer.AssertNotCalled(t, "Transform", mock.Anything)
}

func TestNewPixabayProvider_Validation(t *testing.T) {
	_, err := NewPixabayProvider("not a url", "k", time.Second, transformer.NewPixabayTransformer())
	assert.Error(t, err)

	_, err = NewPixabayProvider("https://pixabay.com/api/", "k", time.Second, nil)
	assert.ErrorContains(t, err, "transformer is nil")

	p, err := NewPixabayProvider("https://pixabay.com/api/", "k", time.Second, transformer.NewPixabayTransformer())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.buildURL("a b", 1, 40), "https://pixabay.com/api/?"))
}
