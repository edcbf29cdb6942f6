package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCenters = CenterMap{
	"CA": {Lat: 37.25, Lon: -119.61},
	"NY": {Lat: 42.1, Lon: -75},
}

func TestCluster(t *testing.T) {
	sf := NewRecord("sf", testTime, 38, -122)
	nyc := NewRecord("nyc", testTime, 41, -74)

	got := Cluster([]Record{sf, nyc}, testCenters)

	assert.Equal(t, Assignment{"CA": {sf}, "NY": {nyc}}, got)
	assert.Equal(t, 2, got.Count())
}

func TestCluster_Partition(t *testing.T) {
	records := []Record{
		NewRecord("a", testTime, 38, -122),
		NewRecord("b", testTime, 41, -74),
		NewRecord("c", testTime, 40, -100),
		NewRecord("d", testTime, 33, -84),
		NewRecord("e", testTime, 47, -122),
	}
	got := Cluster(records, testCenters)

	assert.Equal(t, len(records), got.Count())
	for name, group := range got {
		assert.Contains(t, testCenters, name)
		assert.NotEmpty(t, group, "empty region %s must be absent", name)
	}
}

func TestCluster_TieGoesToSmallestID(t *testing.T) {
	centers := CenterMap{
		"zeta":  {Lat: 0, Lon: 1},
		"alpha": {Lat: 0, Lon: -1},
		"mid":   {Lat: 0, Lon: 5},
	}
	r := NewRecord("tie", testTime, 0, 0)

	// Repeat to shake out any dependence on map iteration order.
	for range 20 {
		got := Cluster([]Record{r}, centers)
		assert.Equal(t, Assignment{"alpha": {r}}, got)
	}
}

func TestCluster_EmptyInputs(t *testing.T) {
	t.Run("no centers", func(t *testing.T) {
		got := Cluster([]Record{NewRecord("x", testTime, 1, 1)}, CenterMap{})
		assert.Empty(t, got)
	})

	t.Run("no records", func(t *testing.T) {
		got := Cluster(nil, testCenters)
		assert.Empty(t, got)
		assert.Zero(t, got.Count())
	})
}

func TestNearestRegion(t *testing.T) {
	name, ok := NearestRegion(Position{Lat: 40.7, Lon: -74}, testCenters)
	require.True(t, ok)
	assert.Equal(t, "NY", name)

	_, ok = NearestRegion(Position{}, nil)
	assert.False(t, ok)
}

func TestDistance(t *testing.T) {
	sf := Position{Lat: 37.7749, Lon: -122.4194}
	nyc := Position{Lat: 40.7128, Lon: -74.0060}

	d := Distance(sf, nyc)
	assert.InDelta(t, 2570.0, d/MetersPerMile, 15)
	assert.InDelta(t, d, Distance(nyc, sf), 1e-6)
	assert.Zero(t, Distance(sf, sf))
}

func TestNearestRegions(t *testing.T) {
	centers := CenterMap{
		"CA": {Lat: 37.25, Lon: -119.61},
		"NV": {Lat: 39.3, Lon: -116.6},
		"NY": {Lat: 42.1, Lon: -75},
		"NJ": {Lat: 40.1, Lon: -74.6},
		"TX": {Lat: 31.5, Lon: -99.3},
	}

	t.Run("ordered by distance", func(t *testing.T) {
		got, err := NearestRegions("CA", centers, 3)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "CA", got[0].Region)
		assert.Zero(t, got[0].Meters)
		assert.Equal(t, "NV", got[1].Region)
		assert.Equal(t, "TX", got[2].Region)
		assert.Less(t, got[1].Meters, got[2].Meters)
	})

	t.Run("negative n lists all", func(t *testing.T) {
		got, err := NearestRegions("NY", centers, -1)
		require.NoError(t, err)
		assert.Len(t, got, len(centers))
		assert.Equal(t, "NJ", got[1].Region)
	})

	t.Run("n larger than centers", func(t *testing.T) {
		got, err := NearestRegions("NY", centers, 100)
		require.NoError(t, err)
		assert.Len(t, got, len(centers))
	})

	t.Run("equal distances ordered by id", func(t *testing.T) {
		got, err := NearestRegions("o", CenterMap{
			"o": {Lat: 0, Lon: 0},
			"b": {Lat: 0, Lon: 1},
			"a": {Lat: 0, Lon: -1},
		}, -1)
		require.NoError(t, err)
		assert.Equal(t, []string{"o", "a", "b"}, []string{got[0].Region, got[1].Region, got[2].Region})
	})

	t.Run("unknown region", func(t *testing.T) {
		_, err := NearestRegions("ZZ", centers, 3)
		require.ErrorIs(t, err, ErrUnknownRegion)
	})
}
