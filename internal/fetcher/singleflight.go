package fetcher

import (
	"context"
	"fmt"

	"contextmcp/internal/data/models"

	"golang.org/x/sync/singleflight"
)

// Group collapses concurrent calls that share a key into one upstream request.
// A Group must not outlive the batch it serves: the shared call runs under the
// first caller's context.
type Group struct {
	g singleflight.Group
}

// Do runs fn once per in-flight key; concurrent callers with the same key
// wait for it and receive the same value and error.
func Do[T any](g *Group, key string, fn func() (T, error)) (T, error) {
	v, err, _ := g.g.Do(key, func() (any, error) {
		return fn()
	})
	out, _ := v.(T)
	return out, err
}

// Dedupe wraps fetch with a fresh Group, so a batch that names the same key
// twice issues one fetch and still gets one outcome per position. Call it once
// per batch.
func Dedupe[K comparable, T any](fetch func(ctx context.Context, key K) models.Outcome[T]) func(ctx context.Context, key K) models.Outcome[T] {
	g := new(Group)
	return func(ctx context.Context, key K) models.Outcome[T] {
		out, _ := Do(g, fmt.Sprint(key), func() (models.Outcome[T], error) {
			return fetch(ctx, key), nil
		})
		return out
	}
}
