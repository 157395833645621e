package common

import (
	"strconv"
	"strings"
	"time"
)

// Recipe is the normalized recipe shape used everywhere past the boundary.
// Catalog records and external lookup results are both folded into it
// before any scoring happens.
type Recipe struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	SodiumMg    *float64 `json:"sodium"`
	FDCID       *int64   `json:"fdcId,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Identity returns the stable deduplication key for a recipe: the external
// identifier when one exists, otherwise the normalized name.
func (r Recipe) Identity() string {
	if r.FDCID != nil {
		return "fdc:" + strconv.FormatInt(*r.FDCID, 10)
	}
	return "name:" + NormalizeIngredient(r.Name)
}

// HealthProfile carries the user's dietary constraints for one request.
// DailySodiumMaxMg arrives already clamped to [500, 3000] by the handler.
type HealthProfile struct {
	DailySodiumMaxMg int    `json:"dailySodiumMax"`
	BirthDate        string `json:"birthDate,omitempty"`
	HasDiabetes      bool   `json:"hasDiabetes"`
	HasRenalDisease  bool   `json:"hasRenalDisease"`
}

// Age returns the age in whole years derived from BirthDate, or nil when
// the date is absent, unparsable, or not in the past.
func (p HealthProfile) Age(now time.Time) *int {
	if p.BirthDate == "" {
		return nil
	}
	birth, err := time.Parse("2006-01-02", p.BirthDate)
	if err != nil {
		return nil
	}
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	if years <= 0 {
		return nil
	}
	return &years
}

// NutrientFact is one normalized record from the external nutrition lookup.
// SodiumMg is nil when the provider reported no sodium entry at all; nil
// means "unknown", not zero.
type NutrientFact struct {
	FDCID       *int64
	Description string
	SodiumMg    *float64
	Ingredients string
}

// Recipe converts a nutrient fact into the common recipe shape. The
// provider's free-text ingredient string is split on commas and semicolons
// and normalized.
func (f NutrientFact) Recipe() Recipe {
	var ingredients []string
	for _, part := range strings.FieldsFunc(f.Ingredients, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if norm := NormalizeIngredient(part); norm != "" {
			ingredients = append(ingredients, norm)
		}
	}
	return Recipe{
		Name:        f.Description,
		Ingredients: ingredients,
		SodiumMg:    f.SodiumMg,
		FDCID:       f.FDCID,
		Description: f.Description,
	}
}

// RecommendationRequest is the validated engine input: a deduplicated
// pantry and a health profile.
type RecommendationRequest struct {
	Pantry  []string
	Profile HealthProfile
}

// NormalizeIngredient lowercases, trims, and collapses internal whitespace.
// Idempotent; equality on normalized strings is the ingredient equality.
func NormalizeIngredient(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// NormalizePantry normalizes every ingredient and collapses duplicates
// while keeping first-seen order.
func NormalizePantry(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	var pantry []string
	for _, item := range raw {
		norm := NormalizeIngredient(item)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		pantry = append(pantry, norm)
	}
	return pantry
}
