package recommend

import (
	"testing"
	"time"

	"recipe-recommender/internal/pkg/common"
)

func sodiumPtr(v float64) *float64 { return &v }

func baseProfile() common.HealthProfile {
	return common.HealthProfile{DailySodiumMaxMg: 1500}
}

func TestEvaluate_SodiumWithinCeiling(t *testing.T) {
	rs := NewRuleSet(1000)
	recipe := common.Recipe{Name: "Salad", Ingredients: []string{"lettuce"}, SodiumMg: sodiumPtr(300)}

	eval := rs.Evaluate(baseProfile(), recipe, time.Now())
	if !eval.Eligible {
		t.Fatalf("expected eligible")
	}
	if eval.Score <= 0 {
		t.Fatalf("expected positive headroom score, got %f", eval.Score)
	}
}

func TestEvaluate_SodiumOverCeiling(t *testing.T) {
	rs := NewRuleSet(1000)
	recipe := common.Recipe{Name: "Salty Soup", SodiumMg: sodiumPtr(1600)}

	if eval := rs.Evaluate(baseProfile(), recipe, time.Now()); eval.Eligible {
		t.Fatalf("expected ineligible above ceiling")
	}
}

func TestEvaluate_UnknownSodiumFailsClosed(t *testing.T) {
	rs := NewRuleSet(1000)
	recipe := common.Recipe{Name: "Mystery Dish", Ingredients: []string{"chicken"}}

	if eval := rs.Evaluate(baseProfile(), recipe, time.Now()); eval.Eligible {
		t.Fatalf("unknown sodium must not be eligible")
	}
}

func TestEvaluate_DiabetesGatesGlycemicTerms(t *testing.T) {
	rs := NewRuleSet(1000)
	profile := baseProfile()
	profile.HasDiabetes = true

	sweet := common.Recipe{Name: "Rice Pudding", Ingredients: []string{"white rice", "sugar"}, SodiumMg: sodiumPtr(150)}
	if eval := rs.Evaluate(profile, sweet, time.Now()); eval.Eligible {
		t.Fatalf("expected glycemic recipe to be ineligible for diabetic profile")
	}

	// Same recipe passes without the condition.
	if eval := rs.Evaluate(baseProfile(), sweet, time.Now()); !eval.Eligible {
		t.Fatalf("expected recipe to pass without diabetes flag")
	}
}

func TestEvaluate_RenalDiseaseTightensCeiling(t *testing.T) {
	rs := NewRuleSet(1000)
	profile := baseProfile()
	profile.HasRenalDisease = true

	recipe := common.Recipe{Name: "Chicken Soup", Ingredients: []string{"chicken"}, SodiumMg: sodiumPtr(1200)}
	if eval := rs.Evaluate(profile, recipe, time.Now()); eval.Eligible {
		t.Fatalf("expected renal ceiling of 1000 to gate 1200mg recipe")
	}

	if eval := rs.Evaluate(baseProfile(), recipe, time.Now()); !eval.Eligible {
		t.Fatalf("expected 1200mg recipe to pass the plain 1500mg ceiling")
	}
}

func TestEvaluate_RenalDiseasePenalizesPotassium(t *testing.T) {
	rs := NewRuleSet(1000)
	profile := baseProfile()
	profile.HasRenalDisease = true

	plain := common.Recipe{Name: "Rice Bowl", Ingredients: []string{"rice"}, SodiumMg: sodiumPtr(300)}
	potassium := common.Recipe{Name: "Potato Bowl", Ingredients: []string{"potato"}, SodiumMg: sodiumPtr(300)}

	plainEval := rs.Evaluate(profile, plain, time.Now())
	potassiumEval := rs.Evaluate(profile, potassium, time.Now())

	if !plainEval.Eligible || !potassiumEval.Eligible {
		t.Fatalf("potassium terms reduce the score, they do not gate")
	}
	if potassiumEval.Score >= plainEval.Score {
		t.Fatalf("expected potassium penalty: %f vs %f", potassiumEval.Score, plainEval.Score)
	}
}

func TestEvaluate_AgeNeverGates(t *testing.T) {
	rs := NewRuleSet(1000)
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	profile := baseProfile()
	profile.BirthDate = "1950-01-01"

	recipe := common.Recipe{Name: "Salad", Ingredients: []string{"lettuce", "tomato"}, SodiumMg: sodiumPtr(300)}
	eval := rs.Evaluate(profile, recipe, now)
	if !eval.Eligible {
		t.Fatalf("age must never cause exclusion")
	}

	// Simple recipes get a mild bonus for older users.
	young := baseProfile()
	youngEval := rs.Evaluate(young, recipe, now)
	if eval.Score <= youngEval.Score {
		t.Fatalf("expected senior bonus on simple recipe: %f vs %f", eval.Score, youngEval.Score)
	}
}

func TestEvaluate_MalformedBirthDateIsNeutral(t *testing.T) {
	rs := NewRuleSet(1000)
	profile := baseProfile()
	profile.BirthDate = "garbage"

	recipe := common.Recipe{Name: "Salad", Ingredients: []string{"lettuce"}, SodiumMg: sodiumPtr(300)}
	eval := rs.Evaluate(profile, recipe, time.Now())
	neutral := rs.Evaluate(baseProfile(), recipe, time.Now())

	if !eval.Eligible || eval.Score != neutral.Score {
		t.Fatalf("malformed birth date must score as no age: %f vs %f", eval.Score, neutral.Score)
	}
}
