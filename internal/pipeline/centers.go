package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/couchcryptid/region-sentiment/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ComputeCenters computes the weighted center of every region using at most
// workers goroutines. The result equals domain.BuildCenterMap; the first
// failing region cancels the rest.
func ComputeCenters(ctx context.Context, g domain.Geography, workers int) (domain.CenterMap, error) {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(workers, 1))

	var mu sync.Mutex
	centers := make(domain.CenterMap, len(g))

	for name, polygons := range g {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := domain.WeightedCenter(polygons)
			if err != nil {
				return fmt.Errorf("region %q: %w", name, err)
			}
			mu.Lock()
			centers[name] = c
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return centers, nil
}
