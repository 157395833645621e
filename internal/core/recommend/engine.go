package recommend

import (
	"context"
	"sort"
	"time"

	"recipe-recommender/internal/core/nutrition"
	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Engine runs the full recommendation pipeline: validate the request,
// gather candidates from the static catalog and the nutrient resolver,
// deduplicate, gate through the health rules, rank, and truncate.
type Engine struct {
	resolver   *nutrition.Resolver
	rules      *RuleSet
	matcher    Matcher
	catalog    []common.Recipe
	maxResults int
}

// candidate is one merged recipe with its ranking signals.
type candidate struct {
	recipe     common.Recipe
	ruleScore  float64
	matchScore float64
	order      int
}

// NewEngine creates a recommendation engine over the given catalog.
func NewEngine(resolver *nutrition.Resolver, rules *RuleSet, catalog []common.Recipe, maxResults int) *Engine {
	return &Engine{
		resolver:   resolver,
		rules:      rules,
		catalog:    catalog,
		maxResults: maxResults,
	}
}

// Recommend returns a ranked, bounded recipe list for the request. External
// lookup failures degrade result quality but only turn into an error when
// the static catalog cannot serve either.
func (e *Engine) Recommend(ctx context.Context, req common.RecommendationRequest) ([]common.Recipe, error) {
	pantry := common.NormalizePantry(req.Pantry)
	if len(pantry) == 0 {
		return nil, common.NewValidationError("please provide at least one ingredient")
	}
	// The producer clamps the ceiling into [500, 3000]; zero means no
	// profile reached the engine at all.
	if req.Profile.DailySodiumMaxMg <= 0 {
		return nil, common.NewValidationError("missing health profile")
	}

	now := time.Now()
	seen := make(map[string]struct{})
	var candidates []candidate
	externalFailures := 0

	add := func(recipe common.Recipe) {
		key := recipe.Identity()
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		candidates = append(candidates, candidate{
			recipe: recipe,
			order:  len(candidates),
		})
	}

	// Catalog candidates: any recipe sharing at least one pantry
	// ingredient.
	for _, recipe := range e.catalog {
		if e.matcher.Score(pantry, recipe) > 0 {
			add(recipe)
		}
	}

	// External candidates: one resolution per pantry ingredient. A failed
	// lookup excludes that ingredient from nutrient-based eligibility but
	// never aborts the request.
	for _, ingredient := range pantry {
		facts, err := e.resolver.Resolve(ctx, ingredient)
		if err != nil {
			externalFailures++
			continue
		}
		for _, fact := range facts {
			add(fact.Recipe())
		}
	}

	if len(candidates) == 0 && len(e.catalog) == 0 && externalFailures == len(pantry) {
		common.LogError("no recipe data available",
			zap.Int("pantry_size", len(pantry)),
			zap.Int("lookup_failures", externalFailures),
		)
		return nil, common.ErrDataUnavailable
	}

	// Hard gate, then soft rank.
	ranked := make([]candidate, 0, len(candidates))
	for _, cand := range candidates {
		eval := e.rules.Evaluate(req.Profile, cand.recipe, now)
		if !eval.Eligible {
			continue
		}
		cand.ruleScore = eval.Score
		cand.matchScore = e.matcher.Score(pantry, cand.recipe)
		ranked = append(ranked, cand)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ruleScore != ranked[j].ruleScore {
			return ranked[i].ruleScore > ranked[j].ruleScore
		}
		if ranked[i].matchScore != ranked[j].matchScore {
			return ranked[i].matchScore > ranked[j].matchScore
		}
		return ranked[i].order < ranked[j].order
	})

	if e.maxResults > 0 && len(ranked) > e.maxResults {
		ranked = ranked[:e.maxResults]
	}

	results := make([]common.Recipe, len(ranked))
	for i, cand := range ranked {
		results[i] = cand.recipe
	}

	common.LogInfo("recommendation computed",
		zap.Int("pantry_size", len(pantry)),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(results)),
		zap.Int("lookup_failures", externalFailures),
	)

	return results, nil
}

// Catalog returns the normalized static catalog backing the engine.
func (e *Engine) Catalog() []common.Recipe {
	return e.catalog
}
