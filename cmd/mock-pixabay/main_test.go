package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PixabayGallery/internal/infra/transformer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	search(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSearch_Pages(t *testing.T) {
	tr := transformer.NewPixabayTransformer()

	cases := []struct {
		target    string
		wantItems int
		wantTotal int
		wantFirst int64
	}{
		{"/api/?key=k&q=cats&page=1&per_page=40", 40, 95, 1000},
		{"/api/?key=k&q=cats&page=3&per_page=40", 15, 95, 1080},
		{"/api/?key=k&q=zzzzznoresults&page=1&per_page=40", 0, 0, 0},
		{"/api/?key=k&q=dogs&page=13&per_page=40", 20, 500, 1480},
	}
	for _, tc := range cases {
		rec := get(t, tc.target)
		require.Equal(t, http.StatusOK, rec.Code, tc.target)

		page, err := tr.Transform(rec.Body)
		require.NoError(t, err)
		assert.Len(t, page.Items, tc.wantItems, tc.target)
		assert.Equal(t, tc.wantTotal, page.TotalHits, tc.target)
		if tc.wantItems > 0 {
			assert.Equal(t, tc.wantFirst, page.Items[0].ID, tc.target)
		}
	}
}

func TestSearch_Errors(t *testing.T) {
	rec := get(t, "/api/?q=cats")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "[ERROR 400] Invalid or missing API key", rec.Body.String())

	rec = get(t, "/api/?key=k&q=cats&page=4&per_page=40")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"page" is out of valid range`)

	rec = get(t, "/api/?key=k&q=cats&per_page=500")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
