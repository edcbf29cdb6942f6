package domain

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// MetersPerMile converts Distance results to statute miles.
const MetersPerMile = 1609.344

// Assignment maps a region id to the records nearest to its center.
// Regions without records are absent.
type Assignment map[string][]Record

// Count returns the number of records across all regions.
func (a Assignment) Count() int {
	n := 0
	for _, records := range a {
		n += len(records)
	}
	return n
}

// Distance returns the great-circle distance in meters between two positions.
func Distance(a, b Position) float64 {
	// orb points are [lon, lat].
	return geo.DistanceHaversine(orb.Point{a.Lon, a.Lat}, orb.Point{b.Lon, b.Lat})
}

// Cluster assigns every record to the region whose center is nearest.
// Exact ties go to the lexicographically smallest region id. With no centers
// the assignment is empty.
func Cluster(records []Record, centers CenterMap) Assignment {
	names := sortedNames(centers)
	out := make(Assignment)
	if len(names) == 0 {
		return out
	}
	for _, r := range records {
		name := nearest(r.Location, names, centers)
		out[name] = append(out[name], r)
	}
	return out
}

// NearestRegion returns the region whose center is closest to p, breaking
// exact ties by the smallest region id. ok is false when centers is empty.
func NearestRegion(p Position, centers CenterMap) (name string, ok bool) {
	names := sortedNames(centers)
	if len(names) == 0 {
		return "", false
	}
	return nearest(p, names, centers), true
}

// RegionDistance is a region id paired with its distance from a reference point.
type RegionDistance struct {
	Region string   `json:"region"`
	Center Position `json:"center"`
	Meters float64  `json:"meters"`
}

// NearestRegions lists the n regions whose centers are closest to the center of
// region, ordered by distance then id. The region itself is included at
// distance 0. A negative n lists every region.
func NearestRegions(region string, centers CenterMap, n int) ([]RegionDistance, error) {
	origin, ok := centers[region]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, region)
	}

	out := make([]RegionDistance, 0, len(centers))
	for name, c := range centers {
		out = append(out, RegionDistance{Region: name, Center: c, Meters: Distance(origin, c)})
	}
	slices.SortFunc(out, func(a, b RegionDistance) int {
		if c := cmp.Compare(a.Meters, b.Meters); c != 0 {
			return c
		}
		return cmp.Compare(a.Region, b.Region)
	})

	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out, nil
}

// nearest scans names in ascending order and only replaces the current best on
// a strictly smaller distance, which resolves exact ties to the smallest id.
func nearest(p Position, names []string, centers CenterMap) string {
	best := names[0]
	bestDist := Distance(p, centers[best])
	for _, name := range names[1:] {
		if d := Distance(p, centers[name]); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func sortedNames(centers CenterMap) []string {
	names := make([]string, 0, len(centers))
	for name := range centers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
