package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/routeguide/internal/core/domain"
)

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("409146138", "-746188906")
	require.NoError(t, err)
	assert.Equal(t, domain.Point{Latitude: 409146138, Longitude: -746188906}, p)

	_, err = parsePoint("4091461380", "0")
	assert.Error(t, err)
	_, err = parsePoint("0", "west")
	assert.Error(t, err)
}

func TestListRectangle(t *testing.T) {
	t.Cleanup(func() { listNear, listRect = nil, nil })

	listRect = []int32{1, 2, 3, 4}
	rect, err := listRectangle()
	require.NoError(t, err)
	assert.Equal(t, domain.Rectangle{
		Lo: domain.Point{Latitude: 1, Longitude: 2},
		Hi: domain.Point{Latitude: 3, Longitude: 4},
	}, rect)

	listNear, listRadius = []float64{40.7838351, -74.6143763}, 1000
	rect, err = listRectangle()
	require.NoError(t, err)
	assert.True(t, rect.Bound().Contains(domain.Point{Latitude: 407838351, Longitude: -746143763}.Orb()))

	listNear = []float64{1}
	_, err = listRectangle()
	assert.Error(t, err)

	listNear, listRect = nil, []int32{1, 2}
	_, err = listRectangle()
	assert.Error(t, err)
}
