package transformer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PixabayGallery/internal/domain"
)

const PixabayName = "pixabay"

type PixabayHit struct {
	ID            int64  `json:"id"`
	PageURL       string `json:"pageURL"`
	Type          string `json:"type"`
	Tags          string `json:"tags"`
	PreviewURL    string `json:"previewURL"`
	WebformatURL  string `json:"webformatURL"`
	LargeImageURL string `json:"largeImageURL"`
	Views         int    `json:"views"`
	Downloads     int    `json:"downloads"`
	Likes         int    `json:"likes"`
	Comments      int    `json:"comments"`
	User          string `json:"user"`
}

type PixabayResponse struct {
	Total     int          `json:"total"`
	TotalHits int          `json:"totalHits"`
	Hits      []PixabayHit `json:"hits"`
}

type PixabayTransformer struct{}

func NewPixabayTransformer() *PixabayTransformer {
	return &PixabayTransformer{}
}

func (t *PixabayTransformer) Transform(reader io.Reader) (domain.SearchResultPage, error) {
	var resp PixabayResponse
	if err := json.NewDecoder(reader).Decode(&resp); err != nil {
		return domain.SearchResultPage{}, fmt.Errorf("failed to decode pixabay response: %w", err)
	}

	if resp.TotalHits < 0 {
		return domain.SearchResultPage{}, fmt.Errorf("pixabay response has negative totalHits: %d", resp.TotalHits)
	}

	items := make([]domain.ImageRecord, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		items = append(items, t.normalize(hit))
	}

	return domain.SearchResultPage{
		Items:     items,
		TotalHits: resp.TotalHits,
		Total:     resp.Total,
	}, nil
}

func (t *PixabayTransformer) normalize(hit PixabayHit) domain.ImageRecord {
	return domain.ImageRecord{
		ID:            hit.ID,
		PageURL:       hit.PageURL,
		LargeImageURL: hit.LargeImageURL,
		WebformatURL:  hit.WebformatURL,
		Tags:          hit.Tags,
		User:          hit.User,
		Likes:         hit.Likes,
		Views:         hit.Views,
		Comments:      hit.Comments,
		Downloads:     hit.Downloads,
	}
}
