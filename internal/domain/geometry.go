package domain

import (
	"fmt"
	"math"
)

// Position is a latitude/longitude pair in degrees.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Polygon is a closed ring: the last position repeats the first.
// Orientation carries no meaning.
type Polygon []Position

// Geography maps a region id to the polygons that make up the region.
// Parts may be disjoint; holes are not modelled.
type Geography map[string][]Polygon

// Edges returns the number of edges in the ring.
func (p Polygon) Edges() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Validate reports whether p is a closed ring with at least three edges.
func (p Polygon) Validate() error {
	if p.Edges() < 3 {
		return fmt.Errorf("%w: %d edges, need at least 3", ErrInvalidPolygon, p.Edges())
	}
	if p[0] != p[len(p)-1] {
		return fmt.Errorf("%w: ring is not closed", ErrInvalidPolygon)
	}
	return nil
}

// Centroid returns the area centroid of a polygon and its unsigned area,
// using the shoelace formula with latitude as x and longitude as y.
//
// A zero-area ring (collinear or repeated vertices) yields its first
// position and an area of 0.
func Centroid(p Polygon) (Position, float64, error) {
	if err := p.Validate(); err != nil {
		return Position{}, 0, err
	}

	var twiceArea, cx, cy float64
	for i := range p.Edges() {
		a, b := p[i], p[i+1]
		cross := a.Lat*b.Lon - b.Lat*a.Lon
		twiceArea += cross
		cx += (a.Lat + b.Lat) * cross
		cy += (a.Lon + b.Lon) * cross
	}

	area := twiceArea / 2
	if area == 0 {
		return p[0], 0, nil
	}
	return Position{Lat: cx / (6 * area), Lon: cy / (6 * area)}, math.Abs(area), nil
}
