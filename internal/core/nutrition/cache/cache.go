package cache

import (
	"context"

	"recipe-recommender/internal/pkg/common"
)

// Entry is one cached resolution result, keyed by normalized ingredient.
// Failed lookups are cached too so an unresolvable ingredient is attempted
// only once per process lifetime.
type Entry struct {
	Facts    []common.NutrientFact `json:"facts"`
	Failed   bool                  `json:"failed"`
	FailKind string                `json:"fail_kind,omitempty"`
}

// Store is the nutrient cache backend. Get returns common.ErrCacheMiss when
// the key is absent. Concurrent Get/Set on the same key may race; both
// writers store the same normalized result, so the cache converges.
type Store interface {
	Get(ctx context.Context, key string) (Entry, error)
	Set(ctx context.Context, key string, entry Entry) error
	Stats() map[string]interface{}
	Close() error
}
