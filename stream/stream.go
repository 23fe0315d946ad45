// Package stream chains channel pipeline stages.
// Each stage runs one goroutine, so element order is preserved end to end,
// and every stage stops early when its context is done.
package stream

import (
	"context"
)

// Slice, et al., taken from:
// https://betterprogramming.pub/writing-a-stream-api-in-go-afbc3c4350e2

func Slice[T any](ctx context.Context, in []T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for _, element := range in {
			select {
			case <-ctx.Done():
				return
			case out <- element:
			}
		}
	}()
	return out
}

func Filter[T any](ctx context.Context, predicate func(T) bool, in <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for element := range in {
			if predicate(element) {
				select {
				case <-ctx.Done():
					return
				case out <- element:
				}
			}
		}
	}()
	return out
}

func Transform[I any, O any](ctx context.Context, transformer func(I) O, in <-chan I) <-chan O {
	out := make(chan O)
	go func() {
		defer close(out)
		for element := range in {
			select {
			case <-ctx.Done():
				return
			case out <- transformer(element):
			}
		}
	}()
	return out
}

// Collect drains in into a slice.
// If ctx is done first, the elements received so far are returned.
func Collect[T any](ctx context.Context, in <-chan T) []T {
	out := make([]T, 0)
	for {
		select {
		case <-ctx.Done():
			return out
		case element, ok := <-in:
			if !ok {
				return out
			}
			out = append(out, element)
		}
	}
}

// Unique passes on the first of each distinct element, in order.
// Repeats are dropped after calling repeated, if it is not nil.
func Unique[T comparable](ctx context.Context, repeated func(T), in <-chan T) <-chan T {
	seen := map[T]struct{}{}
	return Filter(ctx, func(element T) bool {
		if _, ok := seen[element]; ok {
			if repeated != nil {
				repeated(element)
			}
			return false
		}
		seen[element] = struct{}{}
		return true
	}, in)
}
