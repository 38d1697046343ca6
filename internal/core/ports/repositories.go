package ports

import (
	"context"

	"github.com/samirrijal/routeguide/internal/core/domain"
)

// FeatureRepository supplies the feature dataset.
type FeatureRepository interface {
	// List returns every feature in dataset order. It is called once at startup.
	List(ctx context.Context) ([]domain.Feature, error)
}

// FeatureWriter replaces a database-backed dataset wholesale.
type FeatureWriter interface {
	ReplaceAll(ctx context.Context, features []domain.Feature) error
}
