package fdc

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"recipe-recommender/internal/core/nutrition"
	"recipe-recommender/internal/infrastructure/config"
	"recipe-recommender/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client queries the FoodData Central search endpoint.
type Client struct {
	client   *resty.Client
	pageSize int
}

// searchRequest is the FDC search body.
type searchRequest struct {
	Query    string `json:"query"`
	PageSize int    `json:"pageSize"`
}

// searchResponse mirrors the provider payload. Foods is a pointer so a
// response missing the list entirely can be told apart from an empty list.
type searchResponse struct {
	Foods *[]foodItem `json:"foods"`
}

type foodItem struct {
	FDCID       *int64         `json:"fdcId"`
	Description string         `json:"description"`
	Nutrients   []foodNutrient `json:"foodNutrients"`
	Ingredients string         `json:"ingredients"`
}

// foodNutrient tolerates both naming variants the provider uses.
type foodNutrient struct {
	NutrientName   string   `json:"nutrientName"`
	Name           string   `json:"name"`
	NutrientNumber string   `json:"nutrientNumber"`
	UnitName       string   `json:"unitName"`
	Value          *float64 `json:"value"`
}

// NewClient creates an FDC client from configuration.
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.FDC.BaseURL).
		SetTimeout(cfg.FDC.Timeout).
		SetQueryParam("api_key", cfg.FDC.APIKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		client:   client,
		pageSize: cfg.FDC.PageSize,
	}
}

// Search looks up foods matching query and normalizes them into nutrient
// facts. Records without a description are skipped; records without a
// sodium entry keep a nil sodium value.
func (c *Client) Search(ctx context.Context, query string) ([]common.NutrientFact, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(searchRequest{Query: query, PageSize: c.pageSize}).
		Post("/foods/search")

	if err != nil {
		return nil, &nutrition.ResolutionError{
			Kind:  nutrition.KindUnavailable,
			Query: query,
			Err:   err,
		}
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("food data lookup returned non-success status",
			zap.String("query", query),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, &nutrition.ResolutionError{
			Kind:  nutrition.KindUnavailable,
			Query: query,
			Err:   fmt.Errorf("unexpected status %d", resp.StatusCode()),
		}
	}

	var result searchResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, &nutrition.ResolutionError{
			Kind:  nutrition.KindMalformedResponse,
			Query: query,
			Err:   err,
		}
	}
	if result.Foods == nil {
		return nil, &nutrition.ResolutionError{
			Kind:  nutrition.KindMalformedResponse,
			Query: query,
			Err:   fmt.Errorf("response has no foods list"),
		}
	}

	facts := make([]common.NutrientFact, 0, len(*result.Foods))
	for _, food := range *result.Foods {
		if food.Description == "" {
			continue
		}
		facts = append(facts, common.NutrientFact{
			FDCID:       food.FDCID,
			Description: food.Description,
			SodiumMg:    sodiumMg(food.Nutrients),
			Ingredients: food.Ingredients,
		})
	}

	common.LogDebug("food data lookup completed",
		zap.String("query", query),
		zap.Int("facts", len(facts)),
	)

	return facts, nil
}

// sodiumMg finds the sodium entry and converts it to milligrams. Returns
// nil when no sodium entry exists; absence is unknown, not zero.
func sodiumMg(nutrients []foodNutrient) *float64 {
	for _, n := range nutrients {
		if !isSodium(n) || n.Value == nil {
			continue
		}
		value := *n.Value
		if strings.EqualFold(n.UnitName, "g") {
			value *= 1000
		}
		if value < 0 {
			continue
		}
		return &value
	}
	return nil
}

func isSodium(n foodNutrient) bool {
	if n.NutrientNumber == "307" {
		return true
	}
	name := n.NutrientName
	if name == "" {
		name = n.Name
	}
	return strings.Contains(strings.ToLower(name), "sodium")
}
