package nutrition

import (
	"context"
	"time"

	"recipe-recommender/internal/core/nutrition/cache"
	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Provider is the external nutrition lookup. Implemented by the FDC client;
// tests substitute fakes.
type Provider interface {
	Search(ctx context.Context, query string) ([]common.NutrientFact, error)
}

// Resolver answers nutrient lookups cache-first. A miss triggers exactly one
// provider call; the outcome, success or failure, is stored so the same
// ingredient is never fetched twice in a process lifetime.
type Resolver struct {
	provider Provider
	store    cache.Store
	timeout  time.Duration
}

// NewResolver creates a resolver. store may be nil, which disables caching.
func NewResolver(provider Provider, store cache.Store, timeout time.Duration) *Resolver {
	return &Resolver{
		provider: provider,
		store:    store,
		timeout:  timeout,
	}
}

// Resolve returns every nutrient fact known for the ingredient. The
// ingredient must already be normalized; it doubles as the cache key.
func (r *Resolver) Resolve(ctx context.Context, ingredient string) ([]common.NutrientFact, error) {
	if r.store != nil {
		if entry, err := r.store.Get(ctx, ingredient); err == nil {
			if entry.Failed {
				return nil, &ResolutionError{
					Kind:  ResolutionKind(entry.FailKind),
					Query: ingredient,
				}
			}
			return entry.Facts, nil
		}
	}

	lookupCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	facts, err := r.provider.Search(lookupCtx, ingredient)
	if err != nil {
		re, ok := AsResolutionError(err)
		if !ok {
			re = &ResolutionError{Kind: KindUnavailable, Query: ingredient, Err: err}
		}

		common.LogWarn("nutrient resolution failed",
			zap.String("ingredient", ingredient),
			zap.String("kind", string(re.Kind)),
			zap.Error(re.Err),
		)

		// Negative caching keeps repeated requests from hammering an
		// unresolvable ingredient.
		r.cacheSet(ctx, ingredient, cache.Entry{Failed: true, FailKind: string(re.Kind)})
		return nil, re
	}

	r.cacheSet(ctx, ingredient, cache.Entry{Facts: facts})
	return facts, nil
}

func (r *Resolver) cacheSet(ctx context.Context, key string, entry cache.Entry) {
	if r.store == nil {
		return
	}
	if err := r.store.Set(ctx, key, entry); err != nil {
		common.LogWarn("failed to cache nutrient entry",
			zap.String("ingredient", key),
			zap.Error(err),
		)
	}
}
