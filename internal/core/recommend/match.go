package recommend

import (
	"recipe-recommender/internal/pkg/common"
)

// Matcher scores ingredient overlap between the pantry and a recipe. The
// score is a ranking signal, not a subset filter; partial matches rank.
type Matcher struct{}

// Score returns the fraction of the recipe's required ingredients present
// in the pantry, in [0, 1]. A recipe with no required ingredients scores 0;
// it is non-matchable, not a perfect match.
func (Matcher) Score(pantry []string, recipe common.Recipe) float64 {
	if len(recipe.Ingredients) == 0 {
		return 0
	}

	have := make(map[string]struct{}, len(pantry))
	for _, item := range pantry {
		have[common.NormalizeIngredient(item)] = struct{}{}
	}

	matched := 0
	for _, ing := range recipe.Ingredients {
		if _, ok := have[common.NormalizeIngredient(ing)]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(recipe.Ingredients))
}
