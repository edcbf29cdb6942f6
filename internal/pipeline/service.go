package pipeline

import (
	"context"
	"maps"

	"github.com/couchcryptid/region-sentiment/internal/domain"
)

// Service answers queries against one loaded geography and lexicon. It is the
// read side shared by the CLI and the HTTP API.
type Service struct {
	centers  domain.CenterMap
	analyzer *domain.Analyzer
	runner   Runner
}

// NewService creates a Service. runner is usually a *Pipeline, optionally
// wrapped in a CachedRunner.
func NewService(centers domain.CenterMap, analyzer *domain.Analyzer, runner Runner) *Service {
	return &Service{centers: centers, analyzer: analyzer, runner: runner}
}

// Regions returns a copy of the region centers.
func (s *Service) Regions() domain.CenterMap {
	return maps.Clone(s.centers)
}

// Nearest lists the n regions closest to region.
func (s *Service) Nearest(region string, n int) ([]domain.RegionDistance, error) {
	return domain.NearestRegions(region, s.centers, n)
}

// Locate returns the region whose center is nearest to p. It reports false when no
// regions are loaded.
func (s *Service) Locate(p domain.Position) (domain.RegionDistance, bool) {
	name, ok := domain.NearestRegion(p, s.centers)
	if !ok {
		return domain.RegionDistance{}, false
	}
	c := s.centers[name]
	return domain.RegionDistance{Region: name, Center: c, Meters: domain.Distance(p, c)}, true
}

// Report runs the analysis for term.
func (s *Service) Report(ctx context.Context, term string) (domain.Report, error) {
	return s.runner.Run(ctx, term)
}

// ScoreWords lists the scored words of text.
func (s *Service) ScoreWords(text string) []domain.WordScore {
	return s.analyzer.ScoredWords(text)
}
