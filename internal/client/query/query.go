// Package query caches read results of the API client by operation and
// parameters, and drops them when a mutation makes them stale.
//
// Reads younger than the freshness window are served from the cache.
// Mutations invalidate a whole operation family (every page and limit of
// the listing) rather than individual keys.
package query

import (
	"context"
	"fmt"
	"strings"
)

// Operation families.
const (
	OpFeatures = "features"
	OpFeature  = "feature"
)

type Param struct {
	Name  string
	Value any
}

func P(name string, value any) Param {
	return Param{Name: name, Value: value}
}

// Key identifies one cached read. Params keep their order.
type Key struct {
	Operation string
	Params    []Param
}

func NewKey(op string, params ...Param) Key {
	return Key{Operation: op, Params: params}
}

// String renders "features:page=1:limit=10". The operation is always
// followed by a colon so that one family's prefix never matches another.
func (k Key) String() string {
	var b strings.Builder
	b.WriteString(k.Operation)
	b.WriteByte(':')
	for i, p := range k.Params {
		if i > 0 {
			b.WriteByte(':')
		}
		fmt.Fprintf(&b, "%s=%v", p.Name, p.Value)
	}
	return b.String()
}

// Cache stores JSON-encodable results. Get reports false for a missing or
// stale entry.
type Cache interface {
	Get(ctx context.Context, key Key, dst any) (bool, error)
	Set(ctx context.Context, key Key, v any) error
	InvalidateOperation(ctx context.Context, op string) error
	Clear(ctx context.Context) error
}

// Fetch serves key from c while fresh, otherwise calls fn and caches its
// result. Failed calls are not cached. A cache that errors behaves like a
// miss; reads never fail because of the cache.
func Fetch[T any](ctx context.Context, c Cache, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	if ok, err := c.Get(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	v, err := fn(ctx)
	if err != nil {
		return v, err
	}
	_ = c.Set(ctx, key, v)
	return v, nil
}
