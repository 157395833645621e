package nutrition

import (
	"context"
	"errors"
	"testing"

	"recipe-recommender/internal/core/nutrition/cache"
	"recipe-recommender/internal/pkg/common"
)

type stubProvider struct {
	facts []common.NutrientFact
	err   error
	calls int
}

func (s *stubProvider) Search(ctx context.Context, query string) ([]common.NutrientFact, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.facts, nil
}

func TestResolve_CachesSuccess(t *testing.T) {
	sodium := 200.0
	provider := &stubProvider{
		facts: []common.NutrientFact{{Description: "Low Salt Chicken", SodiumMg: &sodium}},
	}
	r := NewResolver(provider, cache.NewMemoryStore(10), 0)

	for i := 0; i < 3; i++ {
		facts, err := r.Resolve(context.Background(), "chicken")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(facts) != 1 || facts[0].Description != "Low Salt Chicken" {
			t.Fatalf("unexpected facts: %v", facts)
		}
	}

	if provider.calls != 1 {
		t.Fatalf("expected a single provider call, got %d", provider.calls)
	}
}

func TestResolve_CachesFailure(t *testing.T) {
	provider := &stubProvider{
		err: &ResolutionError{Kind: KindUnavailable, Query: "chicken"},
	}
	r := NewResolver(provider, cache.NewMemoryStore(10), 0)

	for i := 0; i < 3; i++ {
		_, err := r.Resolve(context.Background(), "chicken")
		re, ok := AsResolutionError(err)
		if !ok {
			t.Fatalf("expected resolution error, got %v", err)
		}
		if re.Kind != KindUnavailable {
			t.Fatalf("unexpected kind: %v", re.Kind)
		}
	}

	if provider.calls != 1 {
		t.Fatalf("failed lookup must be cached as a negative result, got %d calls", provider.calls)
	}
}

func TestResolve_WrapsUnknownErrors(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection reset")}
	r := NewResolver(provider, nil, 0)

	_, err := r.Resolve(context.Background(), "tomato")
	re, ok := AsResolutionError(err)
	if !ok {
		t.Fatalf("expected resolution error, got %v", err)
	}
	if re.Kind != KindUnavailable {
		t.Fatalf("unexpected kind: %v", re.Kind)
	}
}

func TestResolve_NilStoreSkipsCaching(t *testing.T) {
	provider := &stubProvider{facts: []common.NutrientFact{{Description: "Tomato"}}}
	r := NewResolver(provider, nil, 0)

	if _, err := r.Resolve(context.Background(), "tomato"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Resolve(context.Background(), "tomato"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if provider.calls != 2 {
		t.Fatalf("expected 2 calls without a cache, got %d", provider.calls)
	}
}
