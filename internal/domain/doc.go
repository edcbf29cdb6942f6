// Package domain computes per-region sentiment from geotagged text records.
//
// # Geometry
//
// Positions are (latitude, longitude) in degrees. A polygon is a closed ring
// whose last position repeats the first. Centroids use the shoelace formula
// with latitude as x and longitude as y:
//
//	A  = 1/2 * Σ (x_i*y_{i+1} - x_{i+1}*y_i)
//	cx = 1/(6A) * Σ (x_i + x_{i+1}) * (x_i*y_{i+1} - x_{i+1}*y_i)
//	cy = 1/(6A) * Σ (y_i + y_{i+1}) * (x_i*y_{i+1} - x_{i+1}*y_i)
//
// The signed area cancels in the ratio, so the centroid does not depend on
// ring orientation. A ring with A == 0 reports its first position and area 0.
//
// A region is one or more polygons (states with islands are multi-part). Its
// center is the area-weighted mean of the part centroids; when every part has
// zero area the plain mean of the centroids is used. See [WeightedCenter].
//
// # Assignment
//
// Each record goes to the region whose center is nearest by great-circle
// distance. Exact ties resolve to the lexicographically smallest region id,
// independent of map iteration order. The scan is O(regions × records).
//
// # Sentiment
//
// A [Sentiment] is Unknown or a known score in [-1, 1]. A record's sentiment is
// the mean of its scored words; a region's sentiment is the mean of its known
// record sentiments. Unknown never collapses to 0: regions with no known
// sentiment are left out of a [RegionSentimentMap], while a mean of exactly 0
// is reported as a known neutral score.
package domain
