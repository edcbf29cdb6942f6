package domain

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// CenterMap maps a region id to its area-weighted center.
type CenterMap map[string]Position

// WeightedCenter combines the centroids of a region's polygons, weighting each
// by its area. When every part has zero area the weights are undefined, so
// the unweighted mean of the part centroids is returned instead.
func WeightedCenter(polygons []Polygon) (Position, error) {
	if len(polygons) == 0 {
		return Position{}, ErrEmptyRegionSet
	}

	lats := make([]float64, len(polygons))
	lons := make([]float64, len(polygons))
	areas := make([]float64, len(polygons))
	for i, p := range polygons {
		c, area, err := Centroid(p)
		if err != nil {
			return Position{}, fmt.Errorf("polygon %d: %w", i, err)
		}
		lats[i], lons[i], areas[i] = c.Lat, c.Lon, area
	}

	total := floats.Sum(areas)
	if total == 0 {
		n := float64(len(polygons))
		return Position{Lat: floats.Sum(lats) / n, Lon: floats.Sum(lons) / n}, nil
	}
	return Position{
		Lat: floats.Dot(lats, areas) / total,
		Lon: floats.Dot(lons, areas) / total,
	}, nil
}

// BuildCenterMap computes the weighted center of every region in g.
func BuildCenterMap(g Geography) (CenterMap, error) {
	centers := make(CenterMap, len(g))
	for name, polygons := range g {
		c, err := WeightedCenter(polygons)
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", name, err)
		}
		centers[name] = c
	}
	return centers, nil
}
