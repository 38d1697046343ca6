package dataset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/routeguide/internal/core/domain"
)

func TestInferFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, InferFormat("data/route_guide_db.json"))
	assert.Equal(t, FormatGeoJSON, InferFormat("features.geojson"))
	assert.Equal(t, FormatGeoJSON, InferFormat("FEATURES.GeoJSON"))
	assert.Equal(t, FormatJSON, InferFormat("noext"))
}

func TestNewFileRepository_UnknownFormat(t *testing.T) {
	_, err := NewFileRepository("x.csv", "csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestList_BundledDataset(t *testing.T) {
	repo, err := NewFileRepository(filepath.Join("..", "..", "..", "data", "route_guide_db.json"), "")
	require.NoError(t, err)

	features, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, features, 100)

	named := 0
	for _, f := range features {
		if f.Name != "" {
			named++
		}
	}
	assert.Equal(t, 64, named)

	assert.Equal(t, domain.Feature{
		Name:     "Patriots Path, Mendham, NJ 07945, USA",
		Location: domain.Point{Latitude: 407838351, Longitude: -746143763},
	}, features[0])
}

func TestList_MissingFile(t *testing.T) {
	repo, err := NewFileRepository(filepath.Join(t.TempDir(), "nope.json"), "")
	require.NoError(t, err)

	_, err = repo.List(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeJSON(t *testing.T) {
	in := `[
		{"location": {"latitude": 407838351, "longitude": -746143763}, "name": "Patriots Path"},
		{"location": {"latitude": 416855156, "longitude": -744420597}, "name": ""}
	]`

	features, err := DecodeJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, features, 2)
	assert.Equal(t, "Patriots Path", features[0].Name)
	assert.Equal(t, int32(-746143763), features[0].Location.Longitude)
	assert.Empty(t, features[1].Name)
}

func TestDecodeJSON_Malformed(t *testing.T) {
	_, err := DecodeJSON(strings.NewReader(`{"not": "an array"}`))
	assert.Error(t, err)
}

func TestDecodeGeoJSON(t *testing.T) {
	in := `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "geometry": {"type": "Point", "coordinates": [-74.6143763, 40.7838351]},
		 "properties": {"name": "Patriots Path"}}
	]}`

	features, err := DecodeGeoJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, domain.Feature{
		Name:     "Patriots Path",
		Location: domain.Point{Latitude: 407838351, Longitude: -746143763},
	}, features[0])
}

func TestDecodeGeoJSON_NonPoint(t *testing.T) {
	in := `{"type": "FeatureCollection", "features": [
		{"type": "Feature", "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1]]},
		 "properties": {"name": "line"}}
	]}`

	_, err := DecodeGeoJSON(strings.NewReader(in))
	assert.ErrorContains(t, err, "not a point")
}

func TestGeoJSONRoundTrip(t *testing.T) {
	want := []domain.Feature{
		{Name: "Patriots Path", Location: domain.Point{Latitude: 407838351, Longitude: -746143763}},
		{Name: "U.S. 6", Location: domain.Point{Latitude: 413628156, Longitude: -749015468}},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeGeoJSON(&buf, want))

	path := filepath.Join(t.TempDir(), "features.geojson")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	repo, err := NewFileRepository(path, "")
	require.NoError(t, err)
	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecode_UnknownFormat(t *testing.T) {
	_, err := Decode(strings.NewReader("[]"), "csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
