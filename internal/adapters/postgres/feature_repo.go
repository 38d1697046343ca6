package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/routeguide/internal/core/domain"
	"github.com/samirrijal/routeguide/internal/core/ports"
)

// FeatureRepo implements ports.FeatureRepository and ports.FeatureWriter
// over the features table.
type FeatureRepo struct {
	db *DB
}

// NewFeatureRepo creates a new FeatureRepo.
func NewFeatureRepo(db *DB) *FeatureRepo {
	return &FeatureRepo{db: db}
}

// List returns every feature in insertion order.
func (r *FeatureRepo) List(ctx context.Context) ([]domain.Feature, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT name, latitude, longitude
		FROM features
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}

	features, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Feature, error) {
		var f domain.Feature
		err := row.Scan(&f.Name, &f.Location.Latitude, &f.Location.Longitude)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan features: %w", err)
	}
	return features, nil
}

// ReplaceAll swaps the whole table for features in one transaction.
func (r *FeatureRepo) ReplaceAll(ctx context.Context, features []domain.Feature) error {
	return pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "TRUNCATE features RESTART IDENTITY"); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"features"},
			[]string{"name", "latitude", "longitude"},
			pgx.CopyFromSlice(len(features), func(i int) ([]any, error) {
				f := features[i]
				return []any{f.Name, f.Location.Latitude, f.Location.Longitude}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copy features: %w", err)
		}
		return nil
	})
}

var (
	_ ports.FeatureRepository = (*FeatureRepo)(nil)
	_ ports.FeatureWriter     = (*FeatureRepo)(nil)
)
