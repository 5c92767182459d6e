package ports

import (
	"context"

	"github.com/FulinM/waib-2025-LM3-adventurous-compass/internal/domain"
)

type Recommender interface {
	Search(ctx context.Context, query string) ([]domain.AttractionResult, error)
}

// ImageFetcher returns an image URL for the name, or an error wrapping
// domain.ErrNoImage when the service has none.
type ImageFetcher interface {
	FetchImage(ctx context.Context, name string) (string, error)
}
