package domain_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/routeguide/internal/core/domain"
)

func testFeatures() []domain.Feature {
	return []domain.Feature{
		{Name: "Patriots Path", Location: domain.Point{Latitude: 407838351, Longitude: -746143763}},
		{Name: "New Jersey 10", Location: domain.Point{Latitude: 408122808, Longitude: -743999179}},
		{Name: "Shohola", Location: domain.Point{Latitude: 413628156, Longitude: -749015468}},
		{Name: "Kingston", Location: domain.Point{Latitude: 419999544, Longitude: -740371136}},
		{Name: "Patriots Path (dup)", Location: domain.Point{Latitude: 407838351, Longitude: -746143763}},
	}
}

func collect(ix *domain.FeatureIndex, r domain.Rectangle) []string {
	var names []string
	for f := range ix.Within(r) {
		names = append(names, f.Name)
	}
	return names
}

func TestFeatureIndex_Lookup(t *testing.T) {
	ix := domain.NewFeatureIndex(testFeatures())

	f, ok := ix.Lookup(domain.Point{Latitude: 413628156, Longitude: -749015468})
	require.True(t, ok)
	assert.Equal(t, "Shohola", f.Name)

	_, ok = ix.Lookup(domain.Point{Latitude: 413628156, Longitude: -749015469})
	assert.False(t, ok)
}

func TestFeatureIndex_Lookup_FirstDuplicateWins(t *testing.T) {
	ix := domain.NewFeatureIndex(testFeatures())

	f, ok := ix.Lookup(domain.Point{Latitude: 407838351, Longitude: -746143763})
	require.True(t, ok)
	assert.Equal(t, "Patriots Path", f.Name)
}

func TestFeatureIndex_Within(t *testing.T) {
	ix := domain.NewFeatureIndex(testFeatures())
	rect := domain.Rectangle{
		Lo: domain.Point{Latitude: 400000000, Longitude: -750000000},
		Hi: domain.Point{Latitude: 410000000, Longitude: -740000000},
	}

	assert.Equal(t, []string{"Patriots Path", "New Jersey 10", "Patriots Path (dup)"}, collect(ix, rect))
}

func TestFeatureIndex_Within_SwappedCorners(t *testing.T) {
	ix := domain.NewFeatureIndex(testFeatures())
	lo := domain.Point{Latitude: 400000000, Longitude: -750000000}
	hi := domain.Point{Latitude: 420000000, Longitude: -740000000}
	want := collect(ix, domain.Rectangle{Lo: lo, Hi: hi})
	require.Len(t, want, 5)

	cases := map[string]domain.Rectangle{
		"both axes": {Lo: hi, Hi: lo},
		"lat only": {
			Lo: domain.Point{Latitude: hi.Latitude, Longitude: lo.Longitude},
			Hi: domain.Point{Latitude: lo.Latitude, Longitude: hi.Longitude},
		},
		"lon only": {
			Lo: domain.Point{Latitude: lo.Latitude, Longitude: hi.Longitude},
			Hi: domain.Point{Latitude: hi.Latitude, Longitude: lo.Longitude},
		},
	}
	for name, rect := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, collect(ix, rect))
		})
	}
}

func TestFeatureIndex_Within_InclusiveEdges(t *testing.T) {
	ix := domain.NewFeatureIndex(testFeatures())
	p := domain.Point{Latitude: 419999544, Longitude: -740371136}

	assert.Equal(t, []string{"Kingston"}, collect(ix, domain.Rectangle{Lo: p, Hi: p}))
}

func TestFeatureIndex_Within_Empty(t *testing.T) {
	ix := domain.NewFeatureIndex(testFeatures())
	rect := domain.Rectangle{
		Lo: domain.Point{Latitude: 0, Longitude: 0},
		Hi: domain.Point{Latitude: 10, Longitude: 10},
	}

	assert.Empty(t, collect(ix, rect))
}

func TestFeatureIndex_Within_StopsWhenConsumerStops(t *testing.T) {
	ix := domain.NewFeatureIndex(testFeatures())
	rect := domain.Rectangle{
		Lo: domain.Point{Latitude: -900000000, Longitude: -1800000000},
		Hi: domain.Point{Latitude: 900000000, Longitude: 1800000000},
	}

	var got []string
	for f := range ix.Within(rect) {
		got = append(got, f.Name)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"Patriots Path", "New Jersey 10"}, got)
}

func TestFeatureIndex_IsolatedFromInput(t *testing.T) {
	fs := testFeatures()
	ix := domain.NewFeatureIndex(fs)
	fs[0].Name = "mutated"

	f, ok := ix.Lookup(fs[0].Location)
	require.True(t, ok)
	assert.Equal(t, "Patriots Path", f.Name)
	assert.Equal(t, 5, ix.Len())
}

func TestFeatureIndex_ConcurrentReads(t *testing.T) {
	ix := domain.NewFeatureIndex(testFeatures())
	rect := domain.Rectangle{
		Lo: domain.Point{Latitude: 400000000, Longitude: -750000000},
		Hi: domain.Point{Latitude: 420000000, Longitude: -740000000},
	}
	want := collect(ix, rect)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, collect(ix, rect))
		}()
	}
	wg.Wait()
}
