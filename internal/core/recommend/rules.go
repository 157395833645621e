package recommend

import (
	"strings"
	"time"

	"recipe-recommender/internal/pkg/common"
)

// Default term lists for the condition rules. High-glycemic terms gate
// recipes for diabetic users; high-potassium terms penalize recipes for
// renal users.
var (
	defaultGlycemicTerms = []string{
		"sugar", "syrup", "white rice", "honey", "molasses",
	}
	defaultPotassiumTerms = []string{
		"banana", "potato", "orange", "spinach", "avocado",
	}
)

const (
	potassiumPenalty = 0.25
	ageBonus         = 0.1
	// Recipes at or under this many ingredients count as simple for the
	// age adjustment.
	simpleRecipeIngredients = 5
	seniorAgeYears          = 65
)

// Evaluation is the outcome of the health rules for one recipe: a hard
// eligibility gate and a soft suitability score. Higher scores rank first.
type Evaluation struct {
	Eligible bool
	Score    float64
}

// RuleSet holds the health rule configuration. Evaluate is a pure function
// of its inputs; the rule set does no I/O and keeps no mutable state.
type RuleSet struct {
	renalSodiumMaxMg float64
	glycemicTerms    []string
	potassiumTerms   []string
}

// NewRuleSet creates a rule set with the given renal sodium ceiling in mg.
func NewRuleSet(renalSodiumMaxMg int) *RuleSet {
	return &RuleSet{
		renalSodiumMaxMg: float64(renalSodiumMaxMg),
		glycemicTerms:    defaultGlycemicTerms,
		potassiumTerms:   defaultPotassiumTerms,
	}
}

// Evaluate applies every health rule to one recipe. Unknown sodium fails
// closed: a recipe whose sodium could not be resolved is never eligible.
// Age is advisory only and never causes exclusion.
func (rs *RuleSet) Evaluate(profile common.HealthProfile, recipe common.Recipe, now time.Time) Evaluation {
	ceiling := float64(profile.DailySodiumMaxMg)
	if profile.HasRenalDisease && rs.renalSodiumMaxMg < ceiling {
		ceiling = rs.renalSodiumMaxMg
	}

	if recipe.SodiumMg == nil || ceiling <= 0 {
		return Evaluation{}
	}
	sodium := *recipe.SodiumMg
	if sodium > ceiling {
		return Evaluation{}
	}

	text := recipeText(recipe)

	if profile.HasDiabetes && containsAny(text, rs.glycemicTerms) {
		return Evaluation{}
	}

	// Sodium headroom in [0, 1] is the score base.
	score := (ceiling - sodium) / ceiling

	if profile.HasRenalDisease {
		for _, term := range rs.potassiumTerms {
			if strings.Contains(text, term) {
				score -= potassiumPenalty
			}
		}
	}

	if age := profile.Age(now); age != nil && *age >= seniorAgeYears {
		if len(recipe.Ingredients) > 0 && len(recipe.Ingredients) <= simpleRecipeIngredients {
			score += ageBonus
		}
	}

	return Evaluation{Eligible: true, Score: score}
}

// recipeText flattens the searchable text of a recipe: name, provider
// description, and ingredient list, all lowercased.
func recipeText(recipe common.Recipe) string {
	parts := make([]string, 0, len(recipe.Ingredients)+2)
	parts = append(parts, recipe.Name, recipe.Description)
	parts = append(parts, recipe.Ingredients...)
	return strings.ToLower(strings.Join(parts, " "))
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
