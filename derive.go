package reactor

import (
	"context"

	"github.com/solidgraph/reactor/internal"
)

// Derive builds a read-only Collection with one Memo per source item.
// A package-level function rather than a method, since Go methods
// cannot introduce the extra type parameter U a map from T to U needs.
func Derive[T, U any](l *List[T], cb func(item T) (U, error)) *Collection[U] {
	c := internal.DeriveSync(internal.CurrentReactor(), l.internalSelf(), l.l.Keys, l.internalItemValue(), func(v any) (any, error) {
		u, err := cb(as[T](v))
		if err != nil {
			return nil, err
		}
		return u, nil
	})
	return &Collection[U]{c: c}
}

// DeriveTask is the async analogue of Derive: one Task per source item.
func DeriveTask[T, U any](l *List[T], cb func(ctx context.Context, item T) (U, error)) *Collection[U] {
	c := internal.DeriveAsync(internal.CurrentReactor(), l.internalSelf(), l.l.Keys, l.internalItemValue(), func(ctx context.Context, v any) (any, error) {
		u, err := cb(ctx, as[T](v))
		if err != nil {
			return nil, err
		}
		return u, nil
	})
	return &Collection[U]{c: c}
}

// DeriveCollection chains a derived Collection off another Collection,
// so a change anywhere upstream ripples through every link in the chain.
func DeriveCollection[T, U any](c *Collection[T], cb func(item T) (U, error)) *Collection[U] {
	out := internal.DeriveSync(internal.CurrentReactor(), c.internalSelf(), c.c.Keys, c.internalItemValue(), func(v any) (any, error) {
		u, err := cb(as[T](v))
		if err != nil {
			return nil, err
		}
		return u, nil
	})
	return &Collection[U]{c: out}
}

func DeriveCollectionTask[T, U any](c *Collection[T], cb func(ctx context.Context, item T) (U, error)) *Collection[U] {
	out := internal.DeriveAsync(internal.CurrentReactor(), c.internalSelf(), c.c.Keys, c.internalItemValue(), func(ctx context.Context, v any) (any, error) {
		u, err := cb(ctx, as[T](v))
		if err != nil {
			return nil, err
		}
		return u, nil
	})
	return &Collection[U]{c: out}
}
