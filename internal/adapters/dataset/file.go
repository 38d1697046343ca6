// Package dataset loads the feature dataset from a file on disk.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/samirrijal/routeguide/internal/core/domain"
	"github.com/samirrijal/routeguide/internal/core/ports"
	"github.com/samirrijal/routeguide/internal/pkg/geospatial"
)

// Supported file formats.
const (
	FormatJSON    = "json"
	FormatGeoJSON = "geojson"
)

var ErrUnknownFormat = errors.New("unknown dataset format")

// FileRepository reads features from a JSON or GeoJSON file.
type FileRepository struct {
	path   string
	format string
}

// NewFileRepository returns a repository for path. An empty format is
// inferred from the file extension.
func NewFileRepository(path, format string) (*FileRepository, error) {
	if format == "" {
		format = InferFormat(path)
	}
	switch format {
	case FormatJSON, FormatGeoJSON:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &FileRepository{path: path, format: format}, nil
}

// InferFormat maps .geojson to FormatGeoJSON and everything else to FormatJSON.
func InferFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".geojson") {
		return FormatGeoJSON
	}
	return FormatJSON
}

// List reads and decodes the whole file.
func (r *FileRepository) List(_ context.Context) ([]domain.Feature, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	features, err := Decode(f, r.format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return features, nil
}

// Decode reads features in the given format.
func Decode(r io.Reader, format string) ([]domain.Feature, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatGeoJSON:
		return DecodeGeoJSON(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// DecodeJSON parses the route_guide_db.json layout: an array of
// {"location": {"latitude", "longitude"}, "name"} objects.
func DecodeJSON(r io.Reader) ([]domain.Feature, error) {
	var features []domain.Feature
	if err := json.NewDecoder(r).Decode(&features); err != nil {
		return nil, err
	}
	return features, nil
}

// DecodeGeoJSON parses a FeatureCollection of Point features whose name is
// held in the "name" property. Coordinates are decimal degrees.
func DecodeGeoJSON(r io.Reader) ([]domain.Feature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	features := make([]domain.Feature, 0, len(fc.Features))
	for i, f := range fc.Features {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("feature %d: geometry %T is not a point", i, f.Geometry)
		}
		features = append(features, domain.Feature{
			Name:     f.Properties.MustString("name", ""),
			Location: geospatial.FromDegrees(p.Lat(), p.Lon()),
		})
	}
	return features, nil
}

// EncodeGeoJSON writes features as a FeatureCollection readable by DecodeGeoJSON.
func EncodeGeoJSON(w io.Writer, features []domain.Feature) error {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		gf := geojson.NewFeature(orb.Point{f.Location.LonDegrees(), f.Location.LatDegrees()})
		gf.Properties["name"] = f.Name
		fc.Append(gf)
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

var _ ports.FeatureRepository = (*FileRepository)(nil)
