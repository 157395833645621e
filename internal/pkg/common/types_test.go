package common

import (
	"testing"
	"time"
)

func TestNormalizeIngredient_CollapsesCaseAndWhitespace(t *testing.T) {
	got := NormalizeIngredient(" Chicken  Breast ")
	if got != "chicken breast" {
		t.Fatalf("unexpected normalization: %q", got)
	}
	if got != NormalizeIngredient("chicken breast") {
		t.Fatalf("expected equality with already-normal form")
	}
}

func TestNormalizeIngredient_Idempotent(t *testing.T) {
	inputs := []string{" Chicken  Breast ", "TOMATO", "  ", "olive\toil"}
	for _, in := range inputs {
		once := NormalizeIngredient(in)
		twice := NormalizeIngredient(once)
		if once != twice {
			t.Fatalf("normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestNormalizePantry_CollapsesDuplicates(t *testing.T) {
	pantry := NormalizePantry([]string{"Tomato", " tomato ", "TOMATO", "basil", ""})
	if len(pantry) != 2 {
		t.Fatalf("expected 2 entries, got %v", pantry)
	}
	if pantry[0] != "tomato" || pantry[1] != "basil" {
		t.Fatalf("unexpected pantry order: %v", pantry)
	}
}

func TestHealthProfileAge(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	p := HealthProfile{BirthDate: "1960-09-15"}
	age := p.Age(now)
	if age == nil || *age != 65 {
		t.Fatalf("expected age 65, got %v", age)
	}

	p.BirthDate = "1960-08-01"
	age = p.Age(now)
	if age == nil || *age != 66 {
		t.Fatalf("expected age 66, got %v", age)
	}
}

func TestHealthProfileAge_DegradesToNil(t *testing.T) {
	now := time.Now()
	cases := []string{"", "not-a-date", "2999-01-01", "31/12/1960"}
	for _, birthDate := range cases {
		p := HealthProfile{BirthDate: birthDate}
		if age := p.Age(now); age != nil {
			t.Fatalf("expected nil age for %q, got %d", birthDate, *age)
		}
	}
}

func TestNutrientFactRecipe_SplitsIngredientText(t *testing.T) {
	id := int64(222)
	sodium := 200.0
	fact := NutrientFact{
		FDCID:       &id,
		Description: "Low Salt Chicken",
		SodiumMg:    &sodium,
		Ingredients: "Chicken, Water; Salt",
	}

	recipe := fact.Recipe()
	if recipe.Name != "Low Salt Chicken" {
		t.Fatalf("unexpected name: %q", recipe.Name)
	}
	if len(recipe.Ingredients) != 3 {
		t.Fatalf("expected 3 ingredients, got %v", recipe.Ingredients)
	}
	if recipe.Ingredients[0] != "chicken" || recipe.Ingredients[2] != "salt" {
		t.Fatalf("unexpected ingredients: %v", recipe.Ingredients)
	}
	if recipe.SodiumMg == nil || *recipe.SodiumMg != 200 {
		t.Fatalf("sodium not carried over")
	}
}

func TestRecipeIdentity(t *testing.T) {
	id := int64(222)
	withID := Recipe{Name: "Low Salt Chicken", FDCID: &id}
	withoutID := Recipe{Name: " Low  Salt CHICKEN "}

	if withID.Identity() != "fdc:222" {
		t.Fatalf("unexpected identity: %q", withID.Identity())
	}
	if withoutID.Identity() != "name:low salt chicken" {
		t.Fatalf("unexpected identity: %q", withoutID.Identity())
	}

	other := Recipe{Name: "Different Name", FDCID: &id}
	if withID.Identity() != other.Identity() {
		t.Fatalf("same fdcId must map to the same identity")
	}
}
