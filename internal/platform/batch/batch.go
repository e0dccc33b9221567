// Package batch splits identifier lists into bounded groups and fetches them one group at a time.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RequestFunc issues one upstream call for a group of identifiers.
type RequestFunc[T any] func(ctx context.Context, group []string) ([]T, error)

// KeyFunc returns the identifier a record is merged under. Records without one are dropped.
type KeyFunc[T any] func(record T) (string, bool)

type options struct {
	limiter *rate.Limiter
}

type Option func(*options)

// WithLimiter paces group requests. A nil limiter means no pacing.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(o *options) {
		o.limiter = limiter
	}
}

// Chunk splits ids into contiguous groups of at most size, keeping input order.
func Chunk(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	if size < 1 {
		size = 1
	}

	out := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}

// Fetch requests every group sequentially and merges the records by key, last write wins.
// The first failing group aborts the whole fetch.
func Fetch[T any](ctx context.Context, ids []string, size int, request RequestFunc[T], key KeyFunc[T], opts ...Option) (map[string]T, error) {
	out := make(map[string]T, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	if request == nil || key == nil {
		return nil, fmt.Errorf("batch request and key functions are required")
	}

	var cfg options
	for _, opt := range opts {
		opt(&cfg)
	}

	groups := Chunk(ids, size)
	for i, group := range groups {
		if cfg.limiter != nil {
			if err := cfg.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("wait batch %d/%d: %w", i+1, len(groups), err)
			}
		}

		records, err := request(ctx, group)
		if err != nil {
			return nil, fmt.Errorf("fetch batch %d/%d: %w", i+1, len(groups), err)
		}
		for _, record := range records {
			id, ok := key(record)
			if !ok {
				continue
			}
			out[id] = record
		}
	}

	return out, nil
}
