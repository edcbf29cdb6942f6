package domain

import "errors"

var (
	// ErrInvalidPolygon marks a ring that is not closed or has fewer than three edges.
	ErrInvalidPolygon = errors.New("invalid polygon")

	// ErrInvalidSentimentValue marks a sentiment score outside [-1, 1].
	ErrInvalidSentimentValue = errors.New("invalid sentiment value")

	// ErrEmptyRegionSet marks a region with no polygons.
	ErrEmptyRegionSet = errors.New("empty region set")

	// ErrUnknownRegion marks a lookup for a region id that has no center.
	ErrUnknownRegion = errors.New("unknown region")
)
