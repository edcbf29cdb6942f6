// Package file loads geography, records and lexicons from local files.
package file

import (
	"fmt"
	"os"

	"github.com/couchcryptid/region-sentiment/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadGeography reads a GeoJSON FeatureCollection and returns the outer rings
// of every Polygon and MultiPolygon feature, keyed by region id.
//
// The id is the string property nameProperty, falling back to the feature id.
// Features that share an id are merged into one region.
func LoadGeography(path, nameProperty string) (domain.Geography, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open regions file: %w", err)
	}
	return ParseGeography(data, nameProperty)
}

// ParseGeography is LoadGeography over an in-memory document.
func ParseGeography(data []byte, nameProperty string) (domain.Geography, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode regions: %w", err)
	}

	g := make(domain.Geography, len(fc.Features))
	for i, f := range fc.Features {
		name := featureName(f, nameProperty)
		if name == "" {
			return nil, fmt.Errorf("feature %d: no %q property or id", i, nameProperty)
		}

		var polygons []orb.Polygon
		switch geom := f.Geometry.(type) {
		case orb.Polygon:
			polygons = []orb.Polygon{geom}
		case orb.MultiPolygon:
			polygons = geom
		default:
			return nil, fmt.Errorf("feature %d (%s): unsupported geometry %T", i, name, f.Geometry)
		}

		for _, p := range polygons {
			if len(p) == 0 {
				continue
			}
			g[name] = append(g[name], toPolygon(p[0]))
		}
	}
	return g, nil
}

func featureName(f *geojson.Feature, nameProperty string) string {
	if v, ok := f.Properties[nameProperty].(string); ok && v != "" {
		return v
	}
	switch id := f.ID.(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("%v", id)
	}
	return ""
}

// toPolygon converts an outer ring from [lon, lat] points, closing it when
// the last point does not repeat the first.
func toPolygon(r orb.Ring) domain.Polygon {
	p := make(domain.Polygon, 0, len(r)+1)
	for _, pt := range r {
		p = append(p, domain.Position{Lat: pt.Lat(), Lon: pt.Lon()})
	}
	if len(p) > 0 && p[0] != p[len(p)-1] {
		p = append(p, p[0])
	}
	return p
}
