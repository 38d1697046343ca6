package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/routeguide/internal/core/domain"
)

const sample = `[{"location": {"latitude": 407838351, "longitude": -746143763}, "name": "Patriots Path"}]`

type mockWriter struct {
	got []domain.Feature
	err error
}

func (m *mockWriter) ReplaceAll(_ context.Context, features []domain.Feature) error {
	m.got = features
	return m.err
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	features, err := load(context.Background(), http.DefaultClient, path, "")
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, "Patriots Path", features[0].Name)
}

func TestLoad_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/db.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sample))
	}))
	defer srv.Close()

	features, err := load(context.Background(), srv.Client(), srv.URL+"/db.json", "")
	require.NoError(t, err)
	assert.Len(t, features, 1)

	_, err = load(context.Background(), srv.Client(), srv.URL+"/missing.json", "")
	assert.ErrorContains(t, err, "HTTP 404")
}

func TestStore(t *testing.T) {
	features := []domain.Feature{{Name: "a"}}

	w := &mockWriter{}
	require.NoError(t, store(context.Background(), w, features))
	assert.Equal(t, features, w.got)

	w = &mockWriter{err: errors.New("conn closed")}
	assert.ErrorContains(t, store(context.Background(), w, features), "replace features: conn closed")
}
