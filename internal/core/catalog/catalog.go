package catalog

import (
	"fmt"
	"os"

	"recipe-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// record is the on-disk catalog shape. Fields are pointers so a record
// missing one of them fails loudly instead of defaulting to zero values —
// presence is the loader's contract with the engine.
type record struct {
	Name        *string   `json:"name"`
	Ingredients *[]string `json:"ingredients"`
	Sodium      *float64  `json:"sodium"`
}

// Load reads the static recipe catalog once at startup. It fails fast on a
// missing file, unparsable JSON, an empty catalog, or a record violating
// the required-fields contract.
func Load(path string) ([]common.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe catalog %s: %w", path, err)
	}

	var records []record
	if err := common.ParseJSONBytes(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse recipe catalog %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("recipe catalog %s is empty", path)
	}

	recipes := make([]common.Recipe, 0, len(records))
	for i, rec := range records {
		if rec.Name == nil || *rec.Name == "" {
			return nil, fmt.Errorf("recipe catalog %s: record %d has no name", path, i)
		}
		if rec.Ingredients == nil {
			return nil, fmt.Errorf("recipe catalog %s: record %d (%s) has no ingredients", path, i, *rec.Name)
		}
		if rec.Sodium == nil {
			return nil, fmt.Errorf("recipe catalog %s: record %d (%s) has no sodium value", path, i, *rec.Name)
		}
		if *rec.Sodium < 0 {
			return nil, fmt.Errorf("recipe catalog %s: record %d (%s) has negative sodium", path, i, *rec.Name)
		}

		ingredients := make([]string, 0, len(*rec.Ingredients))
		for _, ing := range *rec.Ingredients {
			if norm := common.NormalizeIngredient(ing); norm != "" {
				ingredients = append(ingredients, norm)
			}
		}

		sodium := *rec.Sodium
		recipes = append(recipes, common.Recipe{
			Name:        *rec.Name,
			Ingredients: ingredients,
			SodiumMg:    &sodium,
		})
	}

	common.LogInfo("recipe catalog loaded",
		zap.String("path", path),
		zap.Int("recipes", len(recipes)),
	)

	return recipes, nil
}
