package fetcher

import (
	"context"

	"contextmcp/internal/data/models"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// FanOut calls fetch once per key concurrently and waits for every call to
// settle. Results are returned in key order.
//
// fetch reports failures through the Outcome, never through the group, so one
// failing key cannot cancel or short-circuit its siblings. There is no per-key
// timeout: the caller's ctx is the only bound.
func FanOut[K any, T any](ctx context.Context, keys []K, fetch func(ctx context.Context, key K) models.Outcome[T]) []models.Outcome[T] {
	out := make([]models.Outcome[T], len(keys))
	var g errgroup.Group
	for i, key := range keys {
		g.Go(func() error {
			out[i] = fetch(ctx, key)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Survivors returns the found values in input order, dropping NotFound and
// Error outcomes.
func Survivors[T any](outcomes []models.Outcome[T]) []T {
	return lo.FilterMap(outcomes, func(o models.Outcome[T], _ int) (T, bool) {
		return o.Value()
	})
}

// BatchStats counts outcomes per variant.
type BatchStats struct {
	Requested int
	Found     int
	NotFound  int
	Failed    int
}

// Partial reports whether some, but not all, batch members failed to resolve.
func (s BatchStats) Partial() bool {
	return s.Found > 0 && s.Found < s.Requested
}

func Stats[T any](outcomes []models.Outcome[T]) BatchStats {
	s := BatchStats{Requested: len(outcomes)}
	for _, o := range outcomes {
		switch o.Kind() {
		case models.OutcomeFound:
			s.Found++
		case models.OutcomeNotFound:
			s.NotFound++
		default:
			s.Failed++
		}
	}
	return s
}
